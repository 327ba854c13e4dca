// Package git provides the source-control operations hooks can request.
//
// All operations call the git CLI through [cmd.RunContext] rather than a Go
// git library, so SSH keys, credential helpers and insteadOf rewrites in the
// user's git config apply unchanged.
//
//   - [Clone]: clone a repository into a destination directory
//   - [InitSubmodules]: initialize and update submodules recursively
//   - [CheckGit]: verify git is on PATH
package git
