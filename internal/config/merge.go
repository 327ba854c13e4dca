package config

// MergeLocal merges project overrides into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	merged := *global
	if local.HooksDir != "" {
		merged.HooksDir = local.HooksDir
	}
	if local.HookExtension != "" {
		merged.HookExtension = local.HookExtension
	}
	if local.Shell.Program != "" {
		merged.Shell.Program = local.Shell.Program
	}
	if local.Clone.OnFailure != "" {
		merged.Clone.OnFailure = local.Clone.OnFailure
	}
	return &merged
}

// ForProject loads the project's override file and merges it into global.
func ForProject(global *Config, root string) (*Config, error) {
	local, err := LoadLocal(root)
	if err != nil {
		return global, err
	}
	return MergeLocal(global, local), nil
}
