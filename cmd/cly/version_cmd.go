package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/raphi011/catalyst/internal/output"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print the version",
		GroupID: GroupUtility,
		Args:    usageArgs(cobra.NoArgs),
		Long:    `Print the version. With -v also print the platform, architecture, CPU count and memory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			out.Println(versionString())
			if verbose {
				out.Printf("platform: %s\narch:     %s\ncpus:     %d\nmemory:   %s\n",
					runtime.GOOS, runtime.GOARCH, runtime.NumCPU(), formatMemory(totalMemory()))
			}
			return nil
		},
	}
}

// formatMemory renders a byte count in whole gigabytes, rounded up.
func formatMemory(total uint64) string {
	if total == 0 {
		return "unknown"
	}
	const gb = 1 << 30
	return fmt.Sprintf("%d GB", (total+gb-1)/gb)
}
