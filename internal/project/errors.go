package project

import (
	"errors"
	"fmt"
)

// Startup exit codes.
const (
	ExitUsage      = 2
	ExitMissing    = 3
	ExitNotConfig  = 4
	ExitUnreadable = 5
	ExitInvalid    = 6
)

var (
	ErrMissing    = errors.New("config file not found")
	ErrNotConfig  = errors.New("not a config file")
	ErrUnreadable = errors.New("config file unreadable")
	ErrInvalid    = errors.New("invalid config file")
	ErrExists     = errors.New("config file already exists")
)

// LoadError describes why a descriptor could not be loaded.
type LoadError struct {
	Kind error
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind.Error(), e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Kind }

// ExitCode maps the failure kind to the process exit code.
func (e *LoadError) ExitCode() int {
	switch e.Kind {
	case ErrMissing:
		return ExitMissing
	case ErrNotConfig:
		return ExitNotConfig
	case ErrUnreadable:
		return ExitUnreadable
	default:
		return ExitInvalid
	}
}

func loadErr(kind error, path string, err error) error {
	return &LoadError{Kind: kind, Path: path, Err: err}
}
