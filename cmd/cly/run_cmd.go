package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/catalyst/internal/capability"
	"github.com/raphi011/catalyst/internal/config"
	"github.com/raphi011/catalyst/internal/hooks"
	"github.com/raphi011/catalyst/internal/log"
	"github.com/raphi011/catalyst/internal/output"
	"github.com/raphi011/catalyst/internal/procenv"
	"github.com/raphi011/catalyst/internal/project"
	"github.com/raphi011/catalyst/internal/ui/prompt"
)

// runOptions are the flags shared by "cly" and "cly run".
type runOptions struct {
	configPath string
	hook       string
	discover   bool
	pick       bool
	strict     bool
	json       bool
	args       []string
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Project file (default .catalyst/config.cly.json)")
	cmd.Flags().StringVarP(&opts.hook, "hook", "H", "", "Run only the first hook whose file name contains `id`")
	cmd.Flags().BoolVar(&opts.discover, "discover", false, "Run every hook file found in the project tree")
	cmd.Flags().BoolVarP(&opts.pick, "pick", "p", false, "Choose a hook interactively")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit 1 if any hook failed")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the outcomes as JSON")
	cmd.Flags().StringSliceVarP(&opts.args, "arg", "a", nil, "Set environment variable KEY=VALUE for the hooks (VALUE - reads stdin)")
	cmd.MarkFlagsMutuallyExclusive("hook", "discover", "pick")
	cmd.RegisterFlagCompletionFunc("arg", cobra.NoFileCompletions)
	cmd.RegisterFlagCompletionFunc("config", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
	})
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run the project's hooks",
		GroupID: GroupCore,
		Args:    usageArgs(cobra.NoArgs),
		Long: `Run the hooks listed in the project file, in order.

Each hook gets a fresh interpreter. A failing hook is logged and the run
continues with the next one; only environment variables set through
os.setenv carry over between hooks.`,
		Example: `  cly run                      # Run the project's hook list
  cly run -H build             # Run only the hook matching "build"
  cly run --discover           # Run every *.cly file in the project
  cly run -a TARGET=release    # Pass a variable to all hooks
  cly run --strict             # Exit 1 when a hook fails (for CI)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHooks(cmd.Context(), opts)
		},
	}
	addRunFlags(cmd, &opts)
	return cmd
}

// runner holds everything needed to run hooks of one project.
type runner struct {
	desc  *project.Descriptor
	cfg   *config.Config
	coord *hooks.Coordinator
}

// prepare loads the project at configPath (or the default location below
// workDir) and builds a coordinator for it.
func prepare(ctx context.Context, configPath string) (*runner, error) {
	l := log.FromContext(ctx)

	path := configPath
	if path == "" {
		path = project.DefaultPath(workDir)
	}
	desc, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	root := desc.Root()

	cfg, err := config.ForProject(config.FromContext(ctx), root)
	if err != nil {
		return nil, err
	}
	if err := procenv.LoadDotenv(filepath.Join(root, ".env")); err != nil {
		l.Warn("ignoring .env", "error", err)
	}

	host := &capability.Host{
		Root:         root,
		Dir:          desc.Dir(),
		Log:          l,
		Env:          procenv.Process{},
		Prompter:     prompt.NewAsker(),
		CloneFailure: cfg.Clone.OnFailure,
	}
	l.Debug("loaded project", "name", desc.Name, "root", root, "dir", host.Dir)

	return &runner{
		desc: desc,
		cfg:  cfg,
		coord: &hooks.Coordinator{
			Locator: &hooks.Locator{Root: root, HooksDir: cfg.HooksDir, Extension: cfg.HookExtension},
			Host:    host,
			Log:     l,
		},
	}, nil
}

// run dispatches to the coordinator according to opts.
func (r *runner) run(ctx context.Context, opts runOptions) (hooks.Report, error) {
	switch {
	case opts.hook != "":
		return r.coord.RunSingle(ctx, opts.hook), nil
	case opts.discover:
		return r.coord.RunDiscovered(ctx)
	case opts.pick:
		names, err := r.coord.Locator.List()
		if err != nil {
			return hooks.Report{}, err
		}
		res, err := prompt.Select("Run hook", names)
		if err != nil {
			return hooks.Report{}, err
		}
		if res.Cancelled {
			return hooks.Report{}, nil
		}
		return r.coord.RunSingle(ctx, res.Value), nil
	default:
		return r.coord.RunProject(ctx, r.desc), nil
	}
}

func runHooks(ctx context.Context, opts runOptions) error {
	vars, err := hooks.ParseEnvWithStdin(opts.args)
	if err != nil {
		return &usageError{err: err}
	}

	r, err := prepare(ctx, opts.configPath)
	if err != nil {
		return err
	}
	if err := hooks.ApplyEnv(r.coord.Host.Env, vars); err != nil {
		return err
	}

	report, err := r.run(ctx, opts)
	if err != nil {
		return err
	}

	out := output.FromContext(ctx)
	if opts.json {
		if err := out.JSON(output.ReportJSON(report)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	} else {
		out.Summary(report)
	}

	if failed := len(report.Failed()); opts.strict && failed > 0 {
		return &strictError{failed: failed}
	}
	return nil
}
