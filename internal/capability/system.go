package capability

import (
	"context"
	"errors"
	"io"

	"github.com/raphi011/catalyst/internal/cmd"
	"github.com/raphi011/catalyst/internal/ui/prompt"
)

func (h *Host) getenv(_ context.Context, args Args) (any, error) {
	key, err := args.String(0)
	if err != nil {
		return nil, err
	}
	return h.Env.Getenv(key), nil
}

// setenv is visible to every later hook of the run.
func (h *Host) setenv(_ context.Context, args Args) (any, error) {
	key, err := args.String(0)
	if err != nil {
		return nil, err
	}
	value, err := args.String(1)
	if err != nil {
		return nil, err
	}
	return nil, h.Env.Setenv(key, value)
}

// shell starts "<program> -c <command>" and returns once it is running.
func (h *Host) shell(ctx context.Context, args Args) (any, error) {
	program, err := args.String(0)
	if err != nil {
		return nil, err
	}
	command, err := args.String(1)
	if err != nil {
		return nil, err
	}
	if _, err := cmd.Start(h.cmdContext(ctx), h.Dir, program, "-c", command); err != nil {
		return nil, err
	}
	return nil, nil
}

func (h *Host) isTool(ctx context.Context, args Args) (any, error) {
	name, err := args.String(0)
	if err != nil {
		return nil, err
	}
	return cmd.Succeeds(h.cmdContext(ctx), name), nil
}

// prompt returns "" on EOF, when the user cancels, or when no prompter is
// configured.
func (h *Host) prompt(_ context.Context, args Args) (any, error) {
	msg := args.Join()
	if h.Prompter == nil {
		return "", nil
	}
	answer, err := h.Prompter.Prompt(msg)
	if errors.Is(err, io.EOF) || errors.Is(err, prompt.ErrCancelled) {
		return "", nil
	}
	if err != nil {
		return nil, err
	}
	return answer, nil
}
