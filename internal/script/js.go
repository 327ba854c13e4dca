package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/dop251/goja"

	"github.com/raphi011/catalyst/internal/capability"
)

// consoleMethods maps console methods onto the log namespace.
var consoleMethods = map[string]string{
	"log":   "info",
	"info":  "info",
	"warn":  "warn",
	"error": "error",
}

type jsSession struct {
	lifecycle
	vm  *goja.Runtime
	ctx context.Context
}

func newJSSession() *jsSession {
	return &jsSession{vm: goja.New(), ctx: context.Background()}
}

func (s *jsSession) Bind(bindings []capability.Binding) error {
	if err := s.advance(stateConstructed, stateBound); err != nil {
		return err
	}
	if err := validate(bindings); err != nil {
		return fmt.Errorf("%w: %v", ErrRuntime, err)
	}

	objects := map[string]*goja.Object{}
	var order []string
	logFns := map[string]func(goja.FunctionCall) goja.Value{}

	for _, b := range bindings {
		obj, ok := objects[b.Group]
		if !ok {
			obj = s.vm.NewObject()
			objects[b.Group] = obj
			order = append(order, b.Group)
		}
		fn := s.wrap(b)
		if err := obj.Set(b.Name, fn); err != nil {
			return fmt.Errorf("%w: bind %s.%s: %v", ErrRuntime, b.Group, b.Name, err)
		}
		if b.Group == "log" {
			logFns[b.Name] = fn
		}
	}
	for _, group := range order {
		if err := s.vm.Set(group, objects[group]); err != nil {
			return fmt.Errorf("%w: bind %s: %v", ErrRuntime, group, err)
		}
	}

	console := s.vm.NewObject()
	for method, target := range consoleMethods {
		if fn, ok := logFns[target]; ok {
			if err := console.Set(method, fn); err != nil {
				return fmt.Errorf("%w: bind console.%s: %v", ErrRuntime, method, err)
			}
		}
	}
	return s.vm.Set("console", console)
}

func (s *jsSession) wrap(b capability.Binding) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		args := make(capability.Args, len(call.Arguments))
		for i, arg := range call.Arguments {
			args[i] = arg.Export()
		}

		ret, err := b.Handler(s.ctx, args)
		if err != nil {
			panic(s.vm.NewGoError(fmt.Errorf("%s.%s: %w", b.Group, b.Name, err)))
		}
		if ret == nil {
			return goja.Undefined()
		}
		return s.vm.ToValue(ret)
	}
}

func (s *jsSession) Exec(ctx context.Context, name, body string) error {
	if err := s.advance(stateBound, stateExecuted); err != nil {
		return err
	}
	s.ctx = ctx

	prg, err := goja.Compile(name, body, false)
	if err != nil {
		return parseError(name, err.Error())
	}
	vm := s.vm
	stop := context.AfterFunc(ctx, func() { vm.Interrupt(ctx.Err()) })
	defer stop()
	if _, err := s.vm.RunProgram(prg); err != nil {
		return runtimeError(name, jsMessage(err))
	}
	return nil
}

func (s *jsSession) Close() {
	if s.state == stateClosed {
		return
	}
	s.state = stateClosed
	s.vm = nil
}

// jsMessage returns the thrown value without the stack trace.
func jsMessage(err error) string {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		if v := ex.Value(); v != nil {
			return v.String()
		}
	}
	return err.Error()
}
