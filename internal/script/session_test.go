package script

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/catalyst/internal/capability"
	"github.com/raphi011/catalyst/internal/log"
	"github.com/raphi011/catalyst/internal/procenv"
)

func newHost(t *testing.T) (*capability.Host, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	var buf bytes.Buffer
	return &capability.Host{
		Root: dir,
		Dir:  dir,
		Log:  log.New(&buf, false, false),
		Env:  procenv.NewMap(nil),
		Exit: func(code int) { t.Fatalf("unexpected exit(%d)", code) },
	}, &buf
}

// run executes one hook body in a fresh, fully bound session.
func run(t *testing.T, d Dialect, host *capability.Host, body string) error {
	t.Helper()
	s, err := NewSession(d)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Bind(host.Bindings()))
	return s.Exec(context.Background(), "test.cly", body)
}

var dialects = []Dialect{Lua, JavaScript}

func TestNewSession_UnknownDialect(t *testing.T) {
	t.Parallel()

	s, err := NewSession(Unknown)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrUnknownDialect)
}

func TestSession_StateOrder(t *testing.T) {
	t.Parallel()

	for _, d := range dialects {
		t.Run(d.String(), func(t *testing.T) {
			t.Parallel()
			host, _ := newHost(t)

			s, err := NewSession(d)
			require.NoError(t, err)

			assert.ErrorIs(t, s.Exec(context.Background(), "early", ""), ErrState, "Exec before Bind")
			require.NoError(t, s.Bind(host.Bindings()))
			assert.ErrorIs(t, s.Bind(host.Bindings()), ErrState, "second Bind")
			require.NoError(t, s.Exec(context.Background(), "ok", ""))
			assert.ErrorIs(t, s.Exec(context.Background(), "again", ""), ErrState, "second Exec")

			s.Close()
			s.Close()
			assert.ErrorIs(t, s.Exec(context.Background(), "closed", ""), ErrState, "Exec after Close")
		})
	}
}

func TestSession_InvalidBindings(t *testing.T) {
	t.Parallel()

	noop := func(context.Context, capability.Args) (any, error) { return nil, nil }
	for _, d := range dialects {
		s, err := NewSession(d)
		require.NoError(t, err)
		err = s.Bind([]capability.Binding{
			{Group: "fs", Name: "exists", Handler: noop},
			{Group: "fs", Name: "exists", Handler: noop},
		})
		assert.ErrorIs(t, err, ErrRuntime, "%s: duplicate binding", d)
		s.Close()
	}
}

func TestSession_ParseAndRuntimeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dialect Dialect
		body    string
		want    error
	}{
		{Lua, "local x = ", ErrParse},
		{Lua, "error('boom')", ErrRuntime},
		{Lua, "undefined_fn()", ErrRuntime},
		{Lua, "fs.read_file('missing.txt')", ErrRuntime},
		{JavaScript, "let x = ;", ErrParse},
		{JavaScript, "throw new Error('boom')", ErrRuntime},
		{JavaScript, "undefinedFn()", ErrRuntime},
		{JavaScript, "fs.read_file('missing.txt')", ErrRuntime},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.String()+"/"+tt.body, func(t *testing.T) {
			t.Parallel()
			host, _ := newHost(t)
			err := run(t, tt.dialect, host, tt.body)
			require.ErrorIs(t, err, tt.want)

			var scriptErr *Error
			require.True(t, errors.As(err, &scriptErr))
			assert.Equal(t, "test.cly", scriptErr.Name)
		})
	}
}

func TestSession_ErrorMessageNamesCapability(t *testing.T) {
	t.Parallel()

	for _, d := range dialects {
		host, _ := newHost(t)
		err := run(t, d, host, "fs.read_file('missing.txt')")
		assert.ErrorContains(t, err, "fs.read_file", d.String())
	}
}

func TestSession_Isolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dialect Dialect
		define  string
		probe   string
	}{
		{Lua, "leaked = 42", "if leaked ~= nil then error('leaked global') end"},
		{JavaScript, "var leaked = 42; globalThis.other = 1;", "if (typeof leaked !== 'undefined' || typeof other !== 'undefined') throw new Error('leaked global');"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.String(), func(t *testing.T) {
			t.Parallel()
			host, _ := newHost(t)
			require.NoError(t, run(t, tt.dialect, host, tt.define))
			assert.NoError(t, run(t, tt.dialect, host, tt.probe))
		})
	}
}

func TestSession_WriteReadRoundtrip(t *testing.T) {
	t.Parallel()

	bodies := map[Dialect]string{
		Lua: `
local content = "alpha\nbeta\tgamma"
fs.write_file("out/data.txt", content)
if fs.read_file("out/data.txt") ~= content then error("roundtrip mismatch") end
if not fs.exists("out/data.txt") then error("exists returned false") end
`,
		JavaScript: `
const content = "alpha\nbeta\tgamma";
fs.write_file("out/data.txt", content);
if (fs.read_file("out/data.txt") !== content) throw new Error("roundtrip mismatch");
if (!fs.exists("out/data.txt")) throw new Error("exists returned false");
`,
	}

	for d, body := range bodies {
		host, _ := newHost(t)
		assert.NoError(t, run(t, d, host, body), d.String())
		assert.FileExists(t, filepath.Join(host.Dir, "out", "data.txt"))
	}
}

func TestSession_ValueConversion(t *testing.T) {
	t.Parallel()

	bodies := map[Dialect]string{
		Lua: `
fs.write_json("doc.json", { name = "demo", tags = { "a", "b" }, count = 2 })
local text = fs.read_json("doc.json")
if text ~= '{"count":2,"name":"demo","tags":["a","b"]}' then error("got " .. text) end
`,
		JavaScript: `
fs.write_json("doc.json", { name: "demo", tags: ["a", "b"], count: 2 });
const text = fs.read_json("doc.json");
const doc = JSON.parse(text);
if (doc.name !== "demo" || doc.tags.length !== 2 || doc.count !== 2) throw new Error("got " + text);
`,
	}

	for d, body := range bodies {
		host, _ := newHost(t)
		assert.NoError(t, run(t, d, host, body), d.String())
	}
}

func TestSession_Logging(t *testing.T) {
	t.Parallel()

	host, buf := newHost(t)
	require.NoError(t, run(t, Lua, host, `log.info("from lua", 1)`))
	require.NoError(t, run(t, JavaScript, host, `console.warn("from js"); log.error("explicit")`))

	out := buf.String()
	assert.Contains(t, out, "from lua 1")
	assert.Contains(t, out, "from js")
	assert.Contains(t, out, "explicit")
}

func TestLuaSession_RestrictedLibraries(t *testing.T) {
	t.Parallel()

	host, _ := newHost(t)
	body := `
if string.upper("a") ~= "A" then error("string missing") end
if math.floor(1.5) ~= 1 then error("math missing") end
if table.concat({"a", "b"}, ",") ~= "a,b" then error("table missing") end
if coroutine.create == nil then error("coroutine missing") end
if os.execute ~= nil or os.getenv == nil then error("os is not the host table") end
if io.open ~= nil or io.prompt == nil then error("io is not the host table") end
if package ~= nil then error("package library loaded") end
`
	assert.NoError(t, run(t, Lua, host, body))
}

func TestSession_EnvironmentSharedAcrossSessions(t *testing.T) {
	t.Parallel()

	host, _ := newHost(t)
	require.NoError(t, run(t, Lua, host, `os.setenv("CLY_STAGE", "built")`))
	assert.NoError(t, run(t, JavaScript, host, `if (os.getenv("CLY_STAGE") !== "built") throw new Error("not visible");`))
}

func TestSession_ContextCancelStopsScript(t *testing.T) {
	t.Parallel()

	loops := map[Dialect]string{
		Lua:        "while true do end",
		JavaScript: "while (true) {}",
	}
	for d, body := range loops {
		t.Run(d.String(), func(t *testing.T) {
			t.Parallel()
			host, _ := newHost(t)
			s, err := NewSession(d)
			require.NoError(t, err)
			defer s.Close()
			require.NoError(t, s.Bind(host.Bindings()))

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			assert.ErrorIs(t, s.Exec(ctx, "loop.cly", body), ErrRuntime)
		})
	}
}
