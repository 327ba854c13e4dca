package capability

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/raphi011/catalyst/internal/config"
	"github.com/raphi011/catalyst/internal/log"
	"github.com/raphi011/catalyst/internal/procenv"
)

// ExitCloneFailure is the process exit code used when a clone fails under
// the "exit" policy.
const ExitCloneFailure = 7

// Handler implements one host function.
type Handler func(ctx context.Context, args Args) (any, error)

// Binding is a named host function inside a namespace.
type Binding struct {
	Name    string
	Group   string
	Handler Handler
}

// Prompter asks the user for one line of input.
type Prompter interface {
	Prompt(msg string) (string, error)
}

// Host is the context shared by all host functions of one session.
type Host struct {
	// Root is the project root; find_file searches Root/.catalyst.
	Root string
	// Dir is the working directory relative paths resolve against.
	Dir string

	Log      *log.Logger
	Env      procenv.Environment
	Prompter Prompter
	Client   *http.Client

	// CloneFailure is config.CloneFailureExit or config.CloneFailureError.
	CloneFailure string
	// Exit terminates the process. Defaults to os.Exit.
	Exit func(code int)
}

// Bindings returns a fresh binding table for h, grouped by namespace.
func (h *Host) Bindings() []Binding {
	var out []Binding
	add := func(group string, fns []Binding) {
		for _, b := range fns {
			b.Group = group
			out = append(out, b)
		}
	}

	add("log", []Binding{
		{Name: "info", Handler: h.logWith((*log.Logger).Info)},
		{Name: "warn", Handler: h.logWith((*log.Logger).Warn)},
		{Name: "error", Handler: h.logWith((*log.Logger).Error)},
	})
	add("fs", []Binding{
		{Name: "exists", Handler: h.exists},
		{Name: "read_file", Handler: h.readFile},
		{Name: "write_file", Handler: h.writeFile},
		{Name: "read_json", Handler: h.readJSON},
		{Name: "write_json", Handler: h.writeJSON},
		{Name: "read_yaml", Handler: h.readYAML},
		{Name: "write_yaml", Handler: h.writeYAML},
		{Name: "get_cwd", Handler: h.getCwd},
		{Name: "mkdir", Handler: h.mkdir},
		{Name: "find_file", Handler: h.findFile},
	})
	add("os", []Binding{
		{Name: "getenv", Handler: h.getenv},
		{Name: "setenv", Handler: h.setenv},
		{Name: "shell", Handler: h.shell},
		{Name: "is_tool", Handler: h.isTool},
	})
	add("io", []Binding{
		{Name: "prompt", Handler: h.prompt},
	})
	add("git", []Binding{
		{Name: "clone_repo", Handler: h.cloneRepo},
		{Name: "init_submodules", Handler: h.initSubmodules},
	})
	add("http", []Binding{
		{Name: "fetch", Handler: h.fetch},
	})
	add("zip", []Binding{
		{Name: "zip", Handler: h.zip},
		{Name: "unzip", Handler: h.unzip},
	})
	return out
}

// Groups returns the namespaces of bindings in first-seen order.
func Groups(bindings []Binding) []string {
	var groups []string
	seen := map[string]bool{}
	for _, b := range bindings {
		if !seen[b.Group] {
			seen[b.Group] = true
			groups = append(groups, b.Group)
		}
	}
	return groups
}

// resolve makes p absolute against the working directory.
func (h *Host) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(h.Dir, p)
}

// cmdContext carries the host logger to internal/cmd.
func (h *Host) cmdContext(ctx context.Context) context.Context {
	return log.WithLogger(ctx, h.logger())
}

func (h *Host) logger() *log.Logger {
	if h.Log == nil {
		return log.FromContext(context.Background())
	}
	return h.Log
}

func (h *Host) exit(code int) {
	if h.Exit != nil {
		h.Exit(code)
		return
	}
	os.Exit(code)
}

func (h *Host) cloneFailureExits() bool {
	return h.CloneFailure != config.CloneFailureError
}

func (h *Host) client() *http.Client {
	if h.Client == nil {
		return http.DefaultClient
	}
	return h.Client
}
