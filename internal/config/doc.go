// Package config handles loading and validation of cly settings.
//
// Settings are read from ~/.config/catalyst/config.toml (or the file named by
// CATALYST_CONFIG) and may be overridden per project by
// <project>/.catalyst/cly.toml. These are tool settings; the project
// descriptor itself lives in package project.
//
// # Key Settings
//
//   - hooks_dir: project-relative directory searched for named hooks (default ".catalyst/hooks")
//   - hook_extension: file suffix used when discovering hooks (default ".cly")
//   - log_dir: where per-run log files are written (must be absolute or ~/...)
//   - update_url: endpoint queried by "cly update"
//   - [shell] program: default program for "cly update run"
//   - [clone] on_failure: "exit" terminates the run when a hook's clone fails,
//     "error" raises a script error instead
//
// # Project Overrides
//
// The project file may set hooks_dir, hook_extension, [shell] and [clone].
// log_dir and update_url are global-only.
package config
