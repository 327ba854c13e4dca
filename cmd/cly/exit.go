package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/catalyst/internal/project"
)

// usageError marks bad command-line usage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// usageArgs wraps a cobra argument validator so its errors map to ExitUsage.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

func flagError(_ *cobra.Command, err error) error {
	return &usageError{err: err}
}

// strictError is returned by --strict runs that had failed hooks.
type strictError struct {
	failed int
}

func (e *strictError) Error() string {
	if e.failed == 1 {
		return "1 hook failed"
	}
	return fmt.Sprintf("%d hooks failed", e.failed)
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	var (
		loadErr  *project.LoadError
		usageErr *usageError
	)
	switch {
	case err == nil:
		return 0
	case errors.As(err, &loadErr):
		return loadErr.ExitCode()
	case errors.As(err, &usageErr):
		return project.ExitUsage
	default:
		return 1
	}
}
