package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/catalyst/internal/config"
	"github.com/raphi011/catalyst/internal/output"
	"github.com/raphi011/catalyst/internal/project"
	"github.com/raphi011/catalyst/internal/ui/prompt"
)

func newInitCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Create .catalyst/config.cly.json interactively",
		GroupID: GroupProject,
		Args:    usageArgs(cobra.NoArgs),
		Long: `Ask for the project fields and write .catalyst/config.cly.json.

An existing project file is never overwritten. The hooks directory is
created as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			root := dir
			if root == "" {
				root = workDir
			}
			return initProject(ctx, prompt.NewAsker(), root)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Project root (default current directory)")
	cmd.MarkFlagDirname("dir")

	return cmd
}

func initProject(ctx context.Context, asker project.Asker, root string) error {
	if _, err := os.Stat(project.DefaultPath(root)); err == nil {
		return fmt.Errorf("%w: %s", project.ErrExists, project.DefaultPath(root))
	}

	desc, err := project.Generate(asker, root)
	if err != nil {
		return err
	}
	path, err := desc.Save()
	if err != nil {
		return err
	}

	cfg := config.FromContext(ctx)
	hooksDir := cfg.HooksDir
	if !filepath.IsAbs(hooksDir) {
		hooksDir = filepath.Join(root, hooksDir)
	}
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return fmt.Errorf("create hooks dir: %w", err)
	}

	output.FromContext(ctx).Printf("Created %s\n", path)
	return nil
}
