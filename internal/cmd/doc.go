// Package cmd provides helpers for executing external programs with proper
// error handling.
//
// RunContext and OutputContext wrap [os/exec.Cmd] to capture stderr and use
// it as the error message, so git failures read like git. Start launches a
// program without waiting for it, and Succeeds reports whether a program
// exits cleanly.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, dir, "git", "clone", url, dest); err != nil {
//	    return fmt.Errorf("clone: %w", err)
//	}
//
// # Design Notes
//
// cly shells out to git rather than linking a git library. This keeps SSH
// keys, credential helpers and the user's git config working unchanged.
package cmd
