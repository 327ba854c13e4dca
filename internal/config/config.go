package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Clone failure policies.
const (
	CloneFailureExit  = "exit"
	CloneFailureError = "error"
)

// Defaults
const (
	DefaultHooksDir      = ".catalyst/hooks"
	DefaultHookExtension = ".cly"
	DefaultUpdateURL     = "https://cly-rs.vercel.app/"
)

// ShellConfig holds shell-related settings
type ShellConfig struct {
	Program string `toml:"program"` // program used as "<program> -c <command>"
}

// CloneConfig holds clone-related settings
type CloneConfig struct {
	OnFailure string `toml:"on_failure"` // "exit" or "error"
}

// UIConfig holds terminal output settings.
// Empty values mean the built-in default theme in auto mode.
type UIConfig struct {
	Theme    string `toml:"theme"`    // preset name: none, default, dracula, nord, gruvbox, catppuccin
	Mode     string `toml:"mode"`     // "auto", "light" or "dark"
	Nerdfont bool   `toml:"nerdfont"` // use nerd font symbols in summaries
}

// Config holds the cly settings
type Config struct {
	HooksDir      string      `toml:"hooks_dir"`
	HookExtension string      `toml:"hook_extension"`
	LogDir        string      `toml:"log_dir"`
	UpdateURL     string      `toml:"update_url"`
	Shell         ShellConfig `toml:"shell"`
	Clone         CloneConfig `toml:"clone"`
	UI            UIConfig    `toml:"ui"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		HooksDir:      DefaultHooksDir,
		HookExtension: DefaultHookExtension,
		LogDir:        defaultLogDir(),
		UpdateURL:     DefaultUpdateURL,
		Shell:         ShellConfig{Program: defaultShell()},
		Clone:         CloneConfig{OnFailure: CloneFailureExit},
	}
}

func defaultShell() string {
	if runtime.GOOS == "windows" {
		return "powershell"
	}
	return "bash"
}

func defaultLogDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.TempDir(), "Catalyst")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "catalyst")
	}
	return filepath.Join(home, ".catalyst", "cache")
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the path to the settings file.
// CATALYST_CONFIG takes precedence over ~/.config/catalyst/config.toml.
func Path() (string, error) {
	if p := os.Getenv("CATALYST_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "catalyst", "config.toml"), nil
}

// Load reads the settings file.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads settings from path, filling unset fields with defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidatePath(cfg.LogDir, "log_dir"); err != nil {
		return Default(), err
	}
	if cfg.LogDir != "" {
		expanded, err := expandPath(cfg.LogDir)
		if err != nil {
			return Default(), fmt.Errorf("expand log_dir: %w", err)
		}
		cfg.LogDir = expanded
	}
	if err := validateEnum(cfg.Clone.OnFailure, "clone.on_failure", ValidCloneFailurePolicies); err != nil {
		return Default(), err
	}
	if err := validateHookExtension(cfg.HookExtension); err != nil {
		return Default(), err
	}
	if err := validateEnum(cfg.UI.Theme, "ui.theme", ValidThemeNames); err != nil {
		return Default(), err
	}
	if err := validateEnum(cfg.UI.Mode, "ui.mode", ValidThemeModes); err != nil {
		return Default(), err
	}

	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.HooksDir == "" {
		cfg.HooksDir = def.HooksDir
	}
	if cfg.HookExtension == "" {
		cfg.HookExtension = def.HookExtension
	}
	if cfg.LogDir == "" {
		cfg.LogDir = def.LogDir
	}
	if cfg.UpdateURL == "" {
		cfg.UpdateURL = def.UpdateURL
	}
	if cfg.Shell.Program == "" {
		cfg.Shell.Program = def.Shell.Program
	}
	if cfg.Clone.OnFailure == "" {
		cfg.Clone.OnFailure = def.Clone.OnFailure
	}
}

const defaultConfig = `# cly settings

# Directory (relative to the project root) searched for hooks named in
# .catalyst/config.cly.json. The first file whose name contains the hook
# identifier wins.
# hooks_dir = ".catalyst/hooks"

# File suffix used by "cly run --discover" to find hook files anywhere in
# the project tree.
# hook_extension = ".cly"

# Where a log file is written for every invocation (disable with --nologs).
# Must be an absolute path or start with ~
# log_dir = "~/.catalyst/cache"

# Endpoint queried by "cly update check" and "cly update run".
# update_url = "https://cly-rs.vercel.app/"

# [shell]
# program = "bash"   # used as: <program> -c <command>

# What happens when git.clone_repo fails inside a hook:
#   "exit"  - log the failure and stop the whole run (default)
#   "error" - raise a script error; the run continues with the next hook
# [clone]
# on_failure = "exit"

# Colors and symbols of the run summary
# [ui]
# theme = "default"   # none, default, dracula, nord, gruvbox, catppuccin
# mode = "auto"       # auto, light, dark
# nerdfont = false
`

// Init creates a default settings file at Path().
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type ctxKey struct{}

// WithConfig stores cfg in the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the Config stored in ctx, or defaults if none is stored.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	def := Default()
	return &def
}
