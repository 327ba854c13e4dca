package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/catalyst/internal/config"
	"github.com/raphi011/catalyst/internal/log"
	"github.com/raphi011/catalyst/internal/output"
	"github.com/raphi011/catalyst/internal/project"
	"github.com/raphi011/catalyst/internal/ui/styles"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	debug   bool
	nologs  bool

	// Shared state injected into commands
	workDir string
	logFile *os.File

	// Options of the default action
	rootRun runOptions
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupProject = "project"
	GroupUtility = "utility"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cly",
		Short: "Run project hooks written in Lua or JavaScript",
		Long: `cly runs the hook scripts of a Catalyst project.

A project is described by .catalyst/config.cly.json. Its "hooks" list names
scripts in .catalyst/hooks; each script starts with a dialect line:

  -- catalyst: lua
  // catalyst: js

Without a subcommand cly behaves like "cly run".`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		Args:                       usageArgs(cobra.NoArgs),
		PersistentPreRunE:          setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHooks(cmd.Context(), rootRun)
		},
	}
	addRunFlags(cmd, &rootRun)
	return cmd
}

// setup builds the logger from the global flags and opens the log file.
func setup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	l := log.New(os.Stderr, verbose, quiet)
	if debug {
		l.SetDebug()
	}
	styles.Init(cfg.UI)

	if !nologs && wantsLogFile(cmd) {
		f, err := log.OpenFile(cfg.LogDir, time.Now())
		if err != nil {
			l.Warn("log file disabled", "error", err)
		} else {
			logFile = f
			l.AttachFile(f)
			l.Debug("logging to file", "path", f.Name())
		}
	}

	cmd.SetContext(log.WithLogger(ctx, l))
	return nil
}

// wantsLogFile is false for commands that only print or manage the log dir.
func wantsLogFile(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "clean", "version", "path", "show", "help", "completion", "__complete":
		return false
	}
	return true
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cly: failed to get working directory: %v\n", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = config.WithConfig(ctx, &cfg)
	ctx = output.WithTerminalPrinter(ctx, output.NewTerminal(os.Stdout))
	rootCmd.SetContext(ctx)

	err = rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	code := exitCode(err)
	if err != nil {
		// failed hooks were already logged one by one
		var strict *strictError
		if !errors.As(err, &strict) {
			fmt.Fprintln(os.Stderr, "cly:", err)
		}
		if code == project.ExitUsage {
			fmt.Fprintln(os.Stderr, "Run 'cly -h' for help")
		}
	}
	return code
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug messages")
	rootCmd.PersistentFlags().BoolVar(&nologs, "nologs", false, "Do not write a log file")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("debug", "quiet")
	rootCmd.SetFlagErrorFunc(flagError)

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupProject, Title: "Project Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
	)

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newHooksCmd())

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newConfigCmd())

	rootCmd.AddCommand(newDebugCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newVersionCmd())
}
