package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-project settings file, relative to the project root.
const LocalConfigFileName = ".catalyst/cly.toml"

// LocalConfig holds per-project overrides. Zero values inherit from global.
type LocalConfig struct {
	HooksDir      string      `toml:"hooks_dir"`
	HookExtension string      `toml:"hook_extension"`
	Shell         ShellConfig `toml:"shell"`
	Clone         CloneConfig `toml:"clone"`
}

// LoadLocal reads <root>/.catalyst/cly.toml.
// Returns nil (no error) if the file doesn't exist.
func LoadLocal(root string) (*LocalConfig, error) {
	configFile := filepath.Join(root, filepath.FromSlash(LocalConfigFileName))

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	if err := validateEnum(local.Clone.OnFailure, "clone.on_failure", ValidCloneFailurePolicies); err != nil {
		return nil, fmt.Errorf("%w in %s", err, configFile)
	}
	if err := validateHookExtension(local.HookExtension); err != nil {
		return nil, fmt.Errorf("%w in %s", err, configFile)
	}
	return &local, nil
}
