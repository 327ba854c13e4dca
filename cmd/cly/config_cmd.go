package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/raphi011/catalyst/internal/config"
	"github.com/raphi011/catalyst/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage the settings file",
		Aliases: []string{"cfg"},
		GroupID: GroupProject,
		Long: `Manage cly settings.

Settings file: ~/.config/catalyst/config.toml ($CATALYST_CONFIG overrides)
Project overrides: .catalyst/cly.toml in the project root`,
		Example: `  cly config init     # Create the settings file
  cly config path     # Print where the settings file lives
  cly config show     # Print the effective settings`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default settings file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Init(force)
			if err != nil {
				return fmt.Errorf("%w (use -f to overwrite)", err)
			}
			output.FromContext(cmd.Context()).Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Println(path)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	var project bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as TOML",
		Args:  usageArgs(cobra.NoArgs),
		Long: `Print the effective settings as TOML.

With --project the overrides of the current project are merged in.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			if project {
				merged, err := config.ForProject(cfg, workDir)
				if err != nil {
					return err
				}
				cfg = merged
			}
			return toml.NewEncoder(output.FromContext(ctx).Writer()).Encode(cfg)
		},
	}

	cmd.Flags().BoolVar(&project, "project", false, "Merge .catalyst/cly.toml of the current directory")

	return cmd
}
