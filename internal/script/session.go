package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/raphi011/catalyst/internal/capability"
)

var (
	ErrUnknownDialect = errors.New("unknown dialect")
	ErrParse          = errors.New("parse error")
	ErrRuntime        = errors.New("runtime error")
	ErrState          = errors.New("invalid session state")
)

// Error is a failure reported by the interpreter for one hook.
type Error struct {
	Kind error // ErrParse or ErrRuntime
	Name string
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s in %s: %s", e.Kind.Error(), e.Name, e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

// Session is one interpreter bound to one hook.
//
// Calls must follow Bind, Exec, Close. Bind and Exec may each be called
// once; anything else returns ErrState. Close is safe to call repeatedly.
type Session interface {
	Bind(bindings []capability.Binding) error
	Exec(ctx context.Context, name, body string) error
	Close()
}

// NewSession returns a fresh session for d.
func NewSession(d Dialect) (Session, error) {
	switch d {
	case Lua:
		return newLuaSession(), nil
	case JavaScript:
		return newJSSession(), nil
	default:
		return nil, ErrUnknownDialect
	}
}

type state int

const (
	stateConstructed state = iota
	stateBound
	stateExecuted
	stateClosed
)

var stateNames = [...]string{"constructed", "bound", "executed", "closed"}

// lifecycle tracks the Bind/Exec/Close ordering shared by all sessions.
type lifecycle struct {
	state state
}

func (l *lifecycle) advance(from, to state) error {
	if l.state != from {
		return fmt.Errorf("%w: session is %s, want %s", ErrState, stateNames[l.state], stateNames[from])
	}
	l.state = to
	return nil
}

// validate rejects binding tables an interpreter cannot register.
func validate(bindings []capability.Binding) error {
	seen := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		if b.Group == "" || b.Name == "" || b.Handler == nil {
			return fmt.Errorf("incomplete binding %q.%q", b.Group, b.Name)
		}
		key := b.Group + "." + b.Name
		if seen[key] {
			return fmt.Errorf("duplicate binding %s", key)
		}
		seen[key] = true
	}
	return nil
}

func parseError(name string, msg string) error {
	return &Error{Kind: ErrParse, Name: name, Msg: msg}
}

func runtimeError(name string, msg string) error {
	return &Error{Kind: ErrRuntime, Name: name, Msg: msg}
}
