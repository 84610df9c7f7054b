// Package cli provides the Cobra-based cadupdate command line: check for a
// newer release, download its installer, and inspect the resolved
// configuration.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	apperrors "github.com/mark43/cadupdate/internal/errors"
)

// DefaultConfigPath is the local config file read when --config is not given.
const DefaultConfigPath = "cadupdate.json"

// NewRootCmd builds the cadupdate command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cadupdate",
		Short: "Check for and download application updates",
		Long: `cadupdate checks a package feed for a newer release of the application,
selects the release's Setup installer, and downloads it to a temporary
directory.`,
		Example: `  # Check for a newer release than the one built into this binary
  cadupdate check

  # Compare against an explicit installed version
  cadupdate check --current-version 0.0.1

  # Show where the latest version is looked up
  cadupdate feed-url`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", DefaultConfigPath, "Path to config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(cmd, err)
	})

	for _, sub := range []*cobra.Command{
		newCheckCmd(),
		newFeedURLCmd(),
		newConfigCmd(),
		newVersionCmd(),
	} {
		sub.Args = argumentErrors(sub.Args)
		rootCmd.AddCommand(sub)
	}
	return rootCmd
}

// argumentErrors reports positional argument failures as argument errors
// carrying the command's usage line.
func argumentErrors(validate cobra.PositionalArgs) cobra.PositionalArgs {
	if validate == nil {
		return nil
	}
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(cmd, err)
		}
		return nil
	}
}

func usageError(cmd *cobra.Command, err error) error {
	return apperrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
		fmt.Sprintf("Run '%s --help' for the accepted flags and arguments", cmd.CommandPath()))
}

// Execute runs the root command and prints any error to stderr. An interrupt
// cancels a running check, including its download.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}
