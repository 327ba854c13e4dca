package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.HooksDir != ".catalyst/hooks" {
		t.Errorf("HooksDir = %q, want %q", cfg.HooksDir, ".catalyst/hooks")
	}
	if cfg.HookExtension != ".cly" {
		t.Errorf("HookExtension = %q, want %q", cfg.HookExtension, ".cly")
	}
	if cfg.Clone.OnFailure != CloneFailureExit {
		t.Errorf("Clone.OnFailure = %q, want %q", cfg.Clone.OnFailure, CloneFailureExit)
	}
	if cfg.Shell.Program == "" {
		t.Error("Shell.Program should have a default")
	}
	if cfg.LogDir == "" {
		t.Error("LogDir should have a default")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile(missing) error = %v, want nil", err)
	}
	if cfg != Default() {
		t.Errorf("LoadFile(missing) = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
hooks_dir = "scripts"
hook_extension = ".hook"
log_dir = "/var/log/cly"
update_url = "http://localhost:9999/"

[shell]
program = "zsh"

[clone]
on_failure = "error"

[ui]
theme = "nord"
mode = "light"
nerdfont = true
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	want := Config{
		HooksDir:      "scripts",
		HookExtension: ".hook",
		LogDir:        "/var/log/cly",
		UpdateURL:     "http://localhost:9999/",
		Shell:         ShellConfig{Program: "zsh"},
		Clone:         CloneConfig{OnFailure: "error"},
		UI:            UIConfig{Theme: "nord", Mode: "light", Nerdfont: true},
	}
	if cfg != want {
		t.Errorf("LoadFile() = %+v, want %+v", cfg, want)
	}
}

func TestLoadFile_PartialUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFile(writeConfig(t, `hooks_dir = "h"`))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	def := Default()
	if cfg.HooksDir != "h" {
		t.Errorf("HooksDir = %q, want %q", cfg.HooksDir, "h")
	}
	if cfg.HookExtension != def.HookExtension || cfg.Clone.OnFailure != def.Clone.OnFailure {
		t.Errorf("unset fields not defaulted: %+v", cfg)
	}
}

func TestLoadFile_ExpandsHome(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg, err := LoadFile(writeConfig(t, `log_dir = "~/logs/cly"`))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if want := filepath.Join(home, "logs", "cly"); cfg.LogDir != want {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, want)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad toml", `hooks_dir = `, "failed to parse"},
		{"relative log dir", `log_dir = "logs"`, "log_dir must be absolute"},
		{"bad clone policy", "[clone]\non_failure = \"panic\"", `invalid clone.on_failure "panic"`},
		{"extension without dot", `hook_extension = "cly"`, "invalid hook_extension"},
		{"extension with glob", `hook_extension = ".c*"`, "invalid hook_extension"},
		{"unknown theme", "[ui]\ntheme = \"solarized\"", `invalid ui.theme "solarized"`},
		{"unknown mode", "[ui]\nmode = \"dim\"", `invalid ui.mode "dim"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFile(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadFile() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestPath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv("CATALYST_CONFIG", want)

	got, err := Path()
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("CATALYST_CONFIG", path)

	got, err := Init(false)
	if err != nil {
		t.Fatalf("Init(false) error = %v", err)
	}
	if got != path {
		t.Errorf("Init() path = %q, want %q", got, path)
	}

	// the template is all comments, so it must load as defaults
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile(template) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("template loaded as %+v, want defaults", cfg)
	}

	if _, err := Init(false); err == nil {
		t.Error("Init(false) on existing file = nil, want error")
	}
	if _, err := Init(true); err != nil {
		t.Errorf("Init(true) error = %v, want nil", err)
	}
}

func TestFormatOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opts []string
		want string
	}{
		{[]string{"a"}, `"a"`},
		{[]string{"a", "b"}, `"a" or "b"`},
		{[]string{"a", "b", "c"}, `"a", "b", or "c"`},
	}
	for _, tt := range tests {
		if got := formatOptions(tt.opts); got != tt.want {
			t.Errorf("formatOptions(%v) = %s, want %s", tt.opts, got, tt.want)
		}
	}
}
