package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mark43/cadupdate/internal/build"
)

func newVersionCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for cadupdate",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if plain {
				fmt.Fprintln(out, build.Summary())
				return
			}
			fmt.Fprintf(out, "cadupdate version %s\n", build.Version)
			fmt.Fprintf(out, "Built from commit: %s\n", build.Commit)
			fmt.Fprintf(out, "Build date: %s\n", build.BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Single-line output for scripts")
	return cmd
}
