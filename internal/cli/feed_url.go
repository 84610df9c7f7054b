package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark43/cadupdate/internal/build"
	"github.com/mark43/cadupdate/internal/update"
)

func newFeedURLCmd() *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "feed-url",
		Short: "Print the feed URL for the configured package",
		Long: `Print the URL queried for the latest version. With --files-for, print the
file listing URL of that version instead.`,
		Example: `  cadupdate feed-url
  cadupdate feed-url --files-for 0.0.3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			updater, err := update.NewUpdater(cfg.UpdaterConfig(), build.App{}, cfg.UpdaterOptions()...)
			if err != nil {
				return toCLIError(err, "")
			}

			if version != "" {
				fmt.Fprintln(cmd.OutOrStdout(), updater.FilesURL(version))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), updater.FeedURL())
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "files-for", "", "Print the file listing URL for this version")
	return cmd
}
