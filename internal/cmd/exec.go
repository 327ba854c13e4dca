package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/catalyst/internal/log"
)

// RunContext executes a command and returns stderr in the error message if it fails.
// If ctx is cancelled the context error is returned.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := OutputContext(ctx, dir, name, args...)
	return err
}

// OutputContext executes a command and returns stdout, with stderr in the error if it fails.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stderr bytes.Buffer
	c.Stderr = &stderr

	out, err := c.Output()
	done(time.Since(start))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, err
	}
	return out, nil
}

// Start launches a command with inherited stdio and returns once the process
// is running. The process is reaped in the background; its exit status is
// logged at debug level.
func Start(ctx context.Context, dir, name string, args ...string) (*os.Process, error) {
	l := log.FromContext(ctx)
	l.Command(dir, name, args...)(0)

	c := exec.Command(name, args...)
	c.Dir = dir
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}
	go func() {
		err := c.Wait()
		l.Debug("background process exited", "program", name, "pid", c.Process.Pid, "error", err)
	}()
	return c.Process, nil
}

// Succeeds runs name with no arguments and no stdin and reports whether it
// exited with status 0. A program that cannot be started does not succeed.
func Succeeds(ctx context.Context, name string) bool {
	done := log.FromContext(ctx).Command("", name)
	start := time.Now()

	c := exec.CommandContext(ctx, name)
	err := c.Run()
	done(time.Since(start))
	return err == nil
}

// RunAttached runs a command with inherited stdio and waits for it to exit.
func RunAttached(ctx context.Context, dir, name string, args ...string) error {
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	err := c.Run()
	done(time.Since(start))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
