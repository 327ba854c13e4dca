package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/catalyst/internal/capability"
	"github.com/raphi011/catalyst/internal/debugshell"
	"github.com/raphi011/catalyst/internal/log"
	"github.com/raphi011/catalyst/internal/output"
	"github.com/raphi011/catalyst/internal/procenv"
)

func newDebugCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:     "debug",
		Short:   "Open the debug shell",
		GroupID: GroupUtility,
		Args:    usageArgs(cobra.NoArgs),
		Long: `Open an interactive shell for poking at a project.

Commands: exit, ping, clr/clear, help, hooks, run [hook], env KEY,
caps [group].
Outside a project only the built-in commands are available.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			shell := &debugshell.Shell{
				In:  os.Stdin,
				Out: output.FromContext(ctx).Writer(),
				Log: l,
				Env: procenv.Process{},

				Capabilities: (&capability.Host{Root: workDir, Dir: workDir}).Bindings(),
			}

			r, err := prepare(ctx, configPath)
			if err != nil {
				l.Warn("no project loaded", "error", err)
			} else {
				shell.Capabilities = r.coord.Host.Bindings()
				shell.Hooks = r.coord.Locator.List
				shell.Run = func(ctx context.Context, id string) error {
					report, err := r.run(ctx, runOptions{hook: id})
					if err != nil {
						return err
					}
					output.FromContext(ctx).Summary(report)
					return nil
				}
			}

			err = shell.Serve(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Project file (default .catalyst/config.cly.json)")

	return cmd
}
