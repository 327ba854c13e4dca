package capability

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/raphi011/catalyst/internal/git"
)

// cloneRepo clones url into dest. Under the "exit" policy a failure is
// logged and the process exits with ExitCloneFailure.
func (h *Host) cloneRepo(ctx context.Context, args Args) (any, error) {
	url, err := args.String(0)
	if err != nil {
		return nil, err
	}
	dest, err := args.String(1)
	if err != nil {
		return nil, err
	}
	dest = h.resolve(dest)

	h.logger().Info("cloning repository", "url", url, "dest", dest)
	if err := git.Clone(h.cmdContext(ctx), url, dest); err != nil {
		err = fmt.Errorf("clone %s: %w", url, err)
		if h.cloneFailureExits() {
			h.logger().Error("failed to clone repository", "url", url, "error", err)
			h.exit(ExitCloneFailure)
		}
		return nil, err
	}
	return nil, nil
}

func (h *Host) initSubmodules(ctx context.Context, _ Args) (any, error) {
	if err := git.InitSubmodules(h.cmdContext(ctx), h.Dir); err != nil {
		return nil, fmt.Errorf("init submodules: %w", err)
	}
	return nil, nil
}

// fetch performs a GET and discards the body. Failures are logged, not raised.
func (h *Host) fetch(ctx context.Context, args Args) (any, error) {
	url, err := args.String(0)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		h.logger().Error("fetch failed", "url", url, "error", err)
		return nil, nil
	}
	resp, err := h.client().Do(req)
	if err != nil {
		h.logger().Error("fetch failed", "url", url, "error", err)
		return nil, nil
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		h.logger().Error("fetch failed", "url", url, "status", resp.Status)
		return nil, nil
	}
	h.logger().Debug("fetched", "url", url, "status", resp.Status)
	return nil, nil
}
