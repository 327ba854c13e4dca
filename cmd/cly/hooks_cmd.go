package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/catalyst/internal/hooks"
	"github.com/raphi011/catalyst/internal/output"
	"github.com/raphi011/catalyst/internal/ui/styles"
)

func newHooksCmd() *cobra.Command {
	var (
		configPath string
		discover   bool
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:     "hooks",
		Short:   "List hook files",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    usageArgs(cobra.NoArgs),
		Long: `List the hook files of the project.

By default lists the project's hook list next to the file each identifier
resolves to. With --discover lists every file "cly run --discover" would run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := prepare(ctx, configPath)
			if err != nil {
				return err
			}
			out := output.FromContext(ctx)

			var refs []hooks.Reference
			if discover {
				if refs, err = r.coord.Locator.Scan(); err != nil {
					return err
				}
			} else {
				for _, id := range r.desc.Hooks {
					ref, err := r.coord.Locator.Find(id)
					if err != nil {
						ref = hooks.Reference{Identifier: id}
					}
					refs = append(refs, ref)
				}
			}

			if jsonOut {
				type entry struct {
					Hook string `json:"hook"`
					Path string `json:"path"`
				}
				entries := make([]entry, 0, len(refs))
				for _, ref := range refs {
					entries = append(entries, entry{Hook: ref.Identifier, Path: ref.Path})
				}
				return out.JSON(entries)
			}

			rows := make([][]string, 0, len(refs))
			for _, ref := range refs {
				path := ref.Path
				if path == "" {
					path = styles.WarningStyle.Render("(not found)")
				}
				rows = append(rows, []string{ref.Identifier, path})
			}
			out.Table([]string{"HOOK", "FILE"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Project file (default .catalyst/config.cly.json)")
	cmd.Flags().BoolVar(&discover, "discover", false, "List every hook file in the project tree")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
