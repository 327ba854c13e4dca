package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/raphi011/catalyst/internal/config"
	"github.com/raphi011/catalyst/internal/log"
	"github.com/raphi011/catalyst/internal/output"
	"github.com/raphi011/catalyst/internal/project"
	"github.com/raphi011/catalyst/internal/ui/prompt"
)

// testContext returns a context with a silent logger, default settings and
// a printer writing to the returned buffer.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.LogDir = t.TempDir()

	var buf bytes.Buffer
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(io.Discard, false, true))
	ctx = config.WithConfig(ctx, &cfg)
	ctx = output.WithPrinter(ctx, &buf)
	return ctx, &buf
}

// writeProject creates a project with the given hook list and hook files.
// Returns the path of its project file.
func writeProject(t *testing.T, hookList []string, files map[string]string) string {
	t.Helper()
	root := t.TempDir()

	desc := map[string]any{"name": "demo", "hooks": hookList}
	data, err := json.Marshal(desc)
	if err != nil {
		t.Fatal(err)
	}
	path := project.DefaultPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	for name, content := range files {
		p := filepath.Join(root, ".catalyst", "hooks", name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func execute(ctx context.Context, cmd *cobra.Command, args ...string) error {
	cmd.SetContext(ctx)
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetFlagErrorFunc(flagError)
	return cmd.Execute()
}

func runJSON(t *testing.T, buf *bytes.Buffer) []output.OutcomeJSON {
	t.Helper()
	var got []output.OutcomeJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	return got
}

const touchHook = `-- catalyst: lua
fs.write_file("touched.txt", "yes")
`

func TestRunCmd_ProjectHooks(t *testing.T) {
	t.Parallel()

	path := writeProject(t, []string{"build", "missing"}, map[string]string{
		"build.cly": touchHook,
	})
	ctx, buf := testContext(t)

	if err := execute(ctx, newRunCmd(), "--config", path, "--json"); err != nil {
		t.Fatalf("run error = %v", err)
	}

	got := runJSON(t, buf)
	if len(got) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(got))
	}
	if got[0].Hook != "build" || got[0].Result != "ok" {
		t.Errorf("outcome 0 = %+v, want build ok", got[0])
	}
	if got[1].Hook != "missing" || got[1].Result != "not found" {
		t.Errorf("outcome 1 = %+v, want missing not found", got[1])
	}
	if _, err := os.Stat(filepath.Join(project.RootFor(path), "touched.txt")); err != nil {
		t.Errorf("hook did not run in the project root: %v", err)
	}
}

func TestRunCmd_Strict(t *testing.T) {
	t.Parallel()

	path := writeProject(t, []string{"broken"}, map[string]string{
		"broken.cly": "// catalyst: js\nthrow new Error('boom');\n",
	})
	ctx, _ := testContext(t)

	if err := execute(ctx, newRunCmd(), "--config", path); err != nil {
		t.Errorf("run without --strict error = %v, want nil", err)
	}

	err := execute(ctx, newRunCmd(), "--config", path, "--strict")
	var strict *strictError
	if !errors.As(err, &strict) {
		t.Fatalf("run --strict error = %v, want *strictError", err)
	}
	if exitCode(err) != 1 {
		t.Errorf("exitCode = %d, want 1", exitCode(err))
	}
}

func TestRunCmd_SingleAndDiscover(t *testing.T) {
	t.Parallel()

	path := writeProject(t, []string{"build"}, map[string]string{
		"build.cly":        touchHook,
		"release/tag.cly":  "// catalyst: js\nconsole.log('tag');\n",
		"release/notes.md": "not a hook",
	})

	ctx, buf := testContext(t)
	if err := execute(ctx, newRunCmd(), "--config", path, "--json", "-H", "tag"); err != nil {
		t.Fatalf("run -H error = %v", err)
	}
	if got := runJSON(t, buf); len(got) != 1 || got[0].Hook != "tag" || got[0].Dialect != "js" {
		t.Errorf("run -H tag = %+v, want the js hook", got)
	}

	ctx, buf = testContext(t)
	if err := execute(ctx, newRunCmd(), "--config", path, "--json", "--discover"); err != nil {
		t.Fatalf("run --discover error = %v", err)
	}
	var ids []string
	for _, o := range runJSON(t, buf) {
		ids = append(ids, o.Hook)
	}
	if want := ".catalyst/hooks/build,.catalyst/hooks/release/tag"; strings.Join(ids, ",") != want {
		t.Errorf("discovered %q, want %q", strings.Join(ids, ","), want)
	}
}

func TestRunCmd_Args(t *testing.T) {
	t.Setenv("CLY_TEST_TARGET", "")

	path := writeProject(t, []string{"check"}, map[string]string{
		"check.cly": "-- catalyst: lua\nif os.getenv(\"CLY_TEST_TARGET\") ~= \"release\" then error(\"missing arg\") end\n",
	})
	ctx, buf := testContext(t)

	if err := execute(ctx, newRunCmd(), "--config", path, "--json", "-a", "CLY_TEST_TARGET=release"); err != nil {
		t.Fatalf("run error = %v", err)
	}
	if got := runJSON(t, buf); len(got) != 1 || got[0].Result != "ok" {
		t.Errorf("outcomes = %+v, want one ok", got)
	}

	err := execute(ctx, newRunCmd(), "--config", path, "-a", "NOEQUALS")
	if code := exitCode(err); code != project.ExitUsage {
		t.Errorf("bad --arg exit code = %d, want %d (err %v)", code, project.ExitUsage, err)
	}
}

func TestRunCmd_StartupExitCodes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	notJSON := filepath.Join(dir, "config.txt")
	invalid := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(notJSON, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(invalid, []byte(`{"hooks": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want int
	}{
		{"missing", filepath.Join(dir, "nope.json"), project.ExitMissing},
		{"directory", dir, project.ExitNotConfig},
		{"wrong suffix", notJSON, project.ExitNotConfig},
		{"no name", invalid, project.ExitInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx, _ := testContext(t)
			err := execute(ctx, newRunCmd(), "--config", tt.path)
			if got := exitCode(err); got != tt.want {
				t.Errorf("exitCode = %d, want %d (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), 1},
		{"strict", &strictError{failed: 2}, 1},
		{"usage", &usageError{err: errors.New("bad flag")}, project.ExitUsage},
		{"wrapped load error", fmt.Errorf("start: %w", &project.LoadError{Kind: project.ErrUnreadable, Path: "x"}), project.ExitUnreadable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestUsageErrors(t *testing.T) {
	t.Parallel()

	ctx, _ := testContext(t)
	tests := []struct {
		name string
		cmd  *cobra.Command
		args []string
	}{
		{"unknown flag", newRunCmd(), []string{"--bogus"}},
		{"extra argument", newRunCmd(), []string{"extra"}},
		{"exclusive flags", newRunCmd(), []string{"--hook", "a", "--discover"}},
		{"version takes no args", newVersionCmd(), []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(ctx, tt.cmd, tt.args...)
			if err == nil {
				t.Fatal("error = nil, want usage error")
			}
			if tt.name == "exclusive flags" {
				// cobra reports flag groups as plain errors
				return
			}
			if got := exitCode(err); got != project.ExitUsage {
				t.Errorf("exitCode = %d, want %d (err %v)", got, project.ExitUsage, err)
			}
		})
	}
}

func TestInitProject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	ctx, buf := testContext(t)
	asker := &scriptedAsker{answers: []string{"demo", "1.0.0", "", "", "", "build deploy"}}

	if err := initProject(ctx, asker, root); err != nil {
		t.Fatalf("initProject() error = %v", err)
	}
	desc, err := project.Load(project.DefaultPath(root))
	if err != nil {
		t.Fatalf("load generated project: %v", err)
	}
	if desc.Name != "demo" || strings.Join(desc.Hooks, ",") != "build,deploy" {
		t.Errorf("generated %+v, want demo with hooks build,deploy", desc)
	}
	if info, err := os.Stat(filepath.Join(root, ".catalyst", "hooks")); err != nil || !info.IsDir() {
		t.Errorf("hooks dir not created: %v", err)
	}
	if !strings.Contains(buf.String(), "Created") {
		t.Errorf("output = %q, want a Created line", buf.String())
	}

	asker = &scriptedAsker{answers: []string{"again"}}
	if err := initProject(ctx, asker, root); !errors.Is(err, project.ErrExists) {
		t.Errorf("second initProject() error = %v, want ErrExists", err)
	}
	if asker.asked != 0 {
		t.Errorf("asked %d questions for an existing project, want 0", asker.asked)
	}
}

type scriptedAsker struct {
	answers []string
	asked   int
}

func (a *scriptedAsker) Ask(string) (string, error) {
	if a.asked >= len(a.answers) {
		return "", io.EOF
	}
	a.asked++
	return a.answers[a.asked-1], nil
}

func TestCleanDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.log", "b.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "old"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	removed, err := cleanDir(dir, entries)
	if err != nil {
		t.Fatalf("cleanDir() error = %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
	if left, _ := os.ReadDir(dir); len(left) != 0 {
		t.Errorf("%d entries left, want 0", len(left))
	}
}

func TestCleanCmd_Yes(t *testing.T) {
	t.Parallel()

	ctx, buf := testContext(t)
	dir := config.FromContext(ctx).LogDir
	if err := os.WriteFile(filepath.Join(dir, "run.log"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := execute(ctx, newCleanCmd(), "--yes"); err != nil {
		t.Fatalf("clean --yes error = %v", err)
	}
	if !strings.Contains(buf.String(), "Removed 1 entries") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	if err := execute(ctx, newCleanCmd(), "--yes"); err != nil {
		t.Fatalf("second clean error = %v", err)
	}
	if !strings.Contains(buf.String(), "Nothing to clean") {
		t.Errorf("output = %q, want Nothing to clean", buf.String())
	}
}

// TestCleanCmd_Confirm swaps the confirmation hooks and must not run in parallel.
func TestCleanCmd_Confirm(t *testing.T) {
	origInteractive, origAsk := isInteractive, askConfirm
	t.Cleanup(func() { isInteractive, askConfirm = origInteractive, origAsk })

	tests := []struct {
		name        string
		interactive bool
		answer      prompt.ConfirmResult
		wantCode    int
		wantRemoved bool
	}{
		{"no terminal", false, prompt.ConfirmResult{}, project.ExitUsage, false},
		{"confirmed", true, prompt.ConfirmResult{Confirmed: true}, 0, true},
		{"declined", true, prompt.ConfirmResult{}, 0, false},
		{"cancelled", true, prompt.ConfirmResult{Cancelled: true}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := testContext(t)
			logPath := filepath.Join(config.FromContext(ctx).LogDir, "run.log")
			if err := os.WriteFile(logPath, []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}

			var asked string
			isInteractive = func() bool { return tt.interactive }
			askConfirm = func(question string) (prompt.ConfirmResult, error) {
				asked = question
				return tt.answer, nil
			}

			err := execute(ctx, newCleanCmd())
			if got := exitCode(err); got != tt.wantCode {
				t.Errorf("exit code = %d, want %d (err = %v)", got, tt.wantCode, err)
			}
			if tt.interactive && !strings.Contains(asked, "Delete 1 entries") {
				t.Errorf("question = %q, want it to name the entry count", asked)
			}
			_, statErr := os.Stat(logPath)
			if removed := errors.Is(statErr, os.ErrNotExist); removed != tt.wantRemoved {
				t.Errorf("log file removed = %v, want %v", removed, tt.wantRemoved)
			}
		})
	}
}

func TestHooksCmd(t *testing.T) {
	t.Parallel()

	path := writeProject(t, []string{"build", "gone"}, map[string]string{"build.cly": touchHook})
	ctx, buf := testContext(t)

	if err := execute(ctx, newHooksCmd(), "--config", path, "--json"); err != nil {
		t.Fatalf("hooks error = %v", err)
	}
	var got []struct {
		Hook string `json:"hook"`
		Path string `json:"path"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(got) != 2 || !strings.HasSuffix(got[0].Path, "build.cly") || got[1].Path != "" {
		t.Errorf("hooks = %+v, want build resolved and gone unresolved", got)
	}
}
