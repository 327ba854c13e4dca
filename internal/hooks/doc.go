// Package hooks finds hook scripts and runs them one after another.
//
// # Hook Selection
//
// Hooks are selected in one of three ways:
//
//   - Project: every identifier in the descriptor's "hooks" list is resolved
//     against the hooks directory (default .catalyst/hooks). The first file,
//     in lexical walk order, whose name contains the identifier is used.
//   - Discovered: every file under the project root ending in the hook
//     extension (default .cly) runs, skipping .git directories.
//   - Single: --hook=name resolves and runs only that identifier.
//
// # Dialects
//
// The first line of a hook file selects its interpreter:
//
//	-- catalyst: lua
//	// catalyst: js
//
// Files without one of these exact lines are reported as UnknownDialect and
// never reach an interpreter.
//
// # Failure Handling
//
// A hook that is missing, fails to parse or raises an error is logged at
// error level and the run moves on to the next hook. Every hook's result is
// collected in a [Report].
//
// # Environment Arguments
//
// Use --arg key=value to set an environment variable before the first hook
// runs. --arg key=- reads the value from piped stdin:
//
//	echo "$TOKEN" | cly run --arg API_TOKEN=-
package hooks
