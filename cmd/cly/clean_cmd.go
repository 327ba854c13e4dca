package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/catalyst/internal/config"
	"github.com/raphi011/catalyst/internal/log"
	"github.com/raphi011/catalyst/internal/output"
	"github.com/raphi011/catalyst/internal/ui/prompt"
)

func newCleanCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "clean",
		Short:   "Delete log files",
		GroupID: GroupUtility,
		Args:    usageArgs(cobra.NoArgs),
		Long: `Delete everything in the log directory (log_dir in the settings file).

Asks for confirmation unless --yes is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dir := config.FromContext(ctx).LogDir

			entries, err := os.ReadDir(dir)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("read %s: %w", dir, err)
			}
			if len(entries) == 0 {
				output.FromContext(ctx).Println("Nothing to clean")
				return nil
			}

			if !yes {
				ok, err := confirm(fmt.Sprintf("Delete %d entries in %s?", len(entries), dir))
				if err != nil {
					return err
				}
				if !ok {
					log.FromContext(ctx).Info("aborted")
					return nil
				}
			}

			removed, err := cleanDir(dir, entries)
			output.FromContext(ctx).Printf("Removed %d entries from %s\n", removed, dir)
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

// cleanDir removes entries from dir and returns how many were removed.
func cleanDir(dir string, entries []os.DirEntry) (int, error) {
	var errs []error
	removed := 0
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

// confirm asks a yes/no question. Without a terminal it refuses, so
// destructive commands need --yes in scripts.
func confirm(question string) (bool, error) {
	if !isInteractive() {
		return false, &usageError{err: errors.New("not a terminal: pass --yes to confirm")}
	}
	res, err := askConfirm(question)
	if err != nil {
		return false, err
	}
	return res.Confirmed && !res.Cancelled, nil
}

// Swapped by tests.
var (
	isInteractive = prompt.IsInteractive
	askConfirm    = prompt.Confirm
)
