package main

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/catalyst/internal/cmd"
	"github.com/raphi011/catalyst/internal/config"
	"github.com/raphi011/catalyst/internal/log"
	"github.com/raphi011/catalyst/internal/output"
	"github.com/raphi011/catalyst/internal/ui/progress"
	"github.com/raphi011/catalyst/internal/ui/prompt"
	"github.com/raphi011/catalyst/internal/update"
)

func newUpdateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "update",
		Short:   "Check for and install new releases",
		GroupID: GroupUtility,
		Long: `Ask the update server (update_url in the settings file) about new releases.

"update check" only reports. "update run" prints the install command the
server sends and runs it with the configured shell after confirmation.`,
		Example: `  cly update check
  cly update run
  cly update run --yes    # No confirmation (CI)
  cly update run --copy   # Only copy the install command`,
	}

	c.AddCommand(newUpdateCheckCmd())
	c.AddCommand(newUpdateRunCmd())

	return c
}

func updateClient(ctx context.Context) *update.Client {
	return &update.Client{URL: config.FromContext(ctx).UpdateURL, Version: version}
}

func newUpdateCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether a newer release exists",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			status, err := progress.While(prompt.IsInteractive(), "Checking for updates", func() (update.Status, error) {
				return updateClient(ctx).Check(ctx)
			})
			if err != nil {
				return err
			}
			reportStatus(ctx, status)
			return nil
		},
	}
}

func newUpdateRunCmd() *cobra.Command {
	var (
		yes      bool
		copyOnly bool
	)

	c := &cobra.Command{
		Use:   "run",
		Short: "Download and run the install command",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			l := log.FromContext(ctx)

			type fetched struct {
				status  update.Status
				command string
			}
			res, err := progress.While(prompt.IsInteractive(), "Fetching install command", func() (fetched, error) {
				status, command, err := updateClient(ctx).Fetch(ctx)
				return fetched{status, command}, err
			})
			if err != nil {
				return err
			}
			status, command := res.status, res.command
			if status != update.StatusAvailable {
				reportStatus(ctx, status)
				return nil
			}

			out := output.FromContext(ctx)
			out.Printf("Install command:\n  %s\n", command)
			if copyOnly {
				if err := clipboard.WriteAll(command); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				l.Info("install command copied to clipboard")
				return nil
			}
			if !yes {
				ok, err := confirm("Run it?")
				if err != nil {
					return err
				}
				if !ok {
					l.Info("update aborted")
					return nil
				}
			}

			shell := config.FromContext(ctx).Shell.Program
			l.Info("running update", "shell", shell)
			if err := cmd.RunAttached(ctx, workDir, shell, "-c", command); err != nil {
				return fmt.Errorf("update command failed: %w", err)
			}
			l.Info("update finished")
			return nil
		},
	}

	c.Flags().BoolVarP(&yes, "yes", "y", false, "Run without confirmation")
	c.Flags().BoolVarP(&copyOnly, "copy", "c", false, "Copy the install command to the clipboard instead of running it")
	c.MarkFlagsMutuallyExclusive("yes", "copy")

	return c
}

func reportStatus(ctx context.Context, status update.Status) {
	out := output.FromContext(ctx)
	switch status {
	case update.StatusAvailable:
		out.Println("An update is available. Run 'cly update run' to install it.")
	case update.StatusModified:
		out.Printf("cly %s is newer than the latest release.\n", version)
	default:
		out.Printf("cly %s is up to date.\n", version)
	}
}
