package script

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/raphi011/catalyst/internal/capability"
)

// luaLibs are the standard libraries a Lua hook gets. The host os and io
// tables take the place of the standard modules with those names.
var luaLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
	{lua.CoroutineLibName, lua.OpenCoroutine},
}

type luaSession struct {
	lifecycle
	L   *lua.LState
	ctx context.Context
}

func newLuaSession() *luaSession {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range luaLibs {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	return &luaSession{L: L, ctx: context.Background()}
}

func (s *luaSession) Bind(bindings []capability.Binding) error {
	if err := s.advance(stateConstructed, stateBound); err != nil {
		return err
	}
	if err := validate(bindings); err != nil {
		return fmt.Errorf("%w: %v", ErrRuntime, err)
	}

	tables := map[string]*lua.LTable{}
	for _, b := range bindings {
		tbl, ok := tables[b.Group]
		if !ok {
			tbl = s.L.NewTable()
			tables[b.Group] = tbl
			s.L.SetGlobal(b.Group, tbl)
		}
		s.L.SetField(tbl, b.Name, s.L.NewFunction(s.wrap(b)))
	}
	return nil
}

func (s *luaSession) wrap(b capability.Binding) lua.LGFunction {
	return func(L *lua.LState) int {
		top := L.GetTop()
		args := make(capability.Args, top)
		for i := 1; i <= top; i++ {
			args[i-1] = fromLua(L.Get(i))
		}

		ret, err := b.Handler(s.ctx, args)
		if err != nil {
			L.RaiseError("%s.%s: %s", b.Group, b.Name, err.Error())
			return 0
		}
		if ret == nil {
			return 0
		}
		L.Push(toLua(L, ret))
		return 1
	}
}

func (s *luaSession) Exec(ctx context.Context, name, body string) error {
	if err := s.advance(stateBound, stateExecuted); err != nil {
		return err
	}
	s.ctx = ctx
	if ctx.Done() != nil {
		s.L.SetContext(ctx)
	}

	fn, err := s.L.Load(strings.NewReader(body), name)
	if err != nil {
		return parseError(name, err.Error())
	}
	s.L.Push(fn)
	if err := s.L.PCall(0, lua.MultRet, nil); err != nil {
		return runtimeError(name, luaMessage(err))
	}
	return nil
}

func (s *luaSession) Close() {
	if s.state == stateClosed {
		return
	}
	s.state = stateClosed
	s.L.Close()
}

// luaMessage drops the stack trace gopher-lua appends to runtime errors.
func luaMessage(err error) string {
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) && apiErr.Object != nil {
		return apiErr.Object.String()
	}
	return err.Error()
}

// fromLua converts a Lua value to the shapes capability handlers accept.
// Tables with keys 1..n become lists, other tables become string-keyed maps.
func fromLua(v lua.LValue) any {
	switch v := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		return fromLuaTable(v)
	default:
		return v.String()
	}
}

func fromLuaTable(t *lua.LTable) any {
	count := 0
	t.ForEach(func(lua.LValue, lua.LValue) { count++ })

	if n := t.MaxN(); n > 0 && n == count {
		list := make([]any, n)
		for i := 1; i <= n; i++ {
			list[i-1] = fromLua(t.RawGetInt(i))
		}
		return list
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = fromLua(v)
	})
	return m
}

func toLua(L *lua.LState, v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case string:
		return lua.LString(v)
	case float64:
		return lua.LNumber(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case []string:
		t := L.CreateTable(len(v), 0)
		for _, item := range v {
			t.Append(lua.LString(item))
		}
		return t
	case []any:
		t := L.CreateTable(len(v), 0)
		for _, item := range v {
			t.Append(toLua(L, item))
		}
		return t
	case map[string]any:
		t := L.CreateTable(0, len(v))
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			t.RawSetString(k, toLua(L, v[k]))
		}
		return t
	default:
		return lua.LString(fmt.Sprint(v))
	}
}
