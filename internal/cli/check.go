package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mark43/cadupdate/internal/build"
	"github.com/mark43/cadupdate/internal/config"
	apperrors "github.com/mark43/cadupdate/internal/errors"
	"github.com/mark43/cadupdate/internal/notify"
	"github.com/mark43/cadupdate/internal/progress"
	"github.com/mark43/cadupdate/internal/update"
)

type checkOptions struct {
	currentVersion string
	plain          bool
	notify         bool
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check for a newer release and download its installer",
		Long: `Query the package feed for the latest version, compare it with the installed
version, and download the release's Setup installer into a fresh temporary
directory when it is newer.

The installed version defaults to the version compiled into cadupdate.
Development builds carry no release version, so they need --current-version.`,
		Example: `  # Check against the built-in version
  cadupdate check

  # Check against another installed version
  cadupdate check --current-version 0.0.1

  # Script-friendly output
  cadupdate check --plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.currentVersion, "current-version", "", "Installed version to compare against (default: cadupdate's own version)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Plain key: value output without progress display")
	cmd.Flags().BoolVar(&opts.notify, "notify", false, "Show a desktop notification when the installer is ready")

	return cmd
}

func runCheck(cmd *cobra.Command, opts checkOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var app update.VersionProvider = build.App{}
	if opts.currentVersion != "" {
		app = update.NewStaticVersion(opts.currentVersion)
	} else if build.IsDevBuild() {
		return apperrors.NewArgumentError("cadupdate is a development build and has no release version to compare",
			"Pass the installed version: cadupdate check --current-version <version>",
			"Or build with -ldflags \"-X github.com/mark43/cadupdate/internal/build.Version=<version>\"")
	}

	updater, err := update.NewUpdater(cfg.UpdaterConfig(), app,
		append(cfg.UpdaterOptions(), update.WithLogger(logger))...)
	if err != nil {
		return toCLIError(err, "")
	}

	if cfg.ShowProgress && !opts.plain {
		display := progress.NewProgressDisplay(cmd.ErrOrStderr(), capabilitiesOf(cmd.ErrOrStderr()))
		updater.On(display.Handle)
		defer display.Stop()
	}
	if cfg.Notify || opts.notify {
		updater.On(notify.NewHandler(true, logger).Handle)
	}

	outcome := updater.CheckForUpdates(cmd.Context())
	if outcome.Err != nil {
		return toCLIError(outcome.Err, outcome.Latest)
	}

	var path string
	if outcome.Download != nil {
		path, err = outcome.Download.Wait(cmd.Context())
		if err != nil {
			logger.Debug("download did not complete", zap.Error(err))
			return toCLIError(err, outcome.Latest)
		}
	}

	if opts.plain {
		printPlainOutcome(cmd.OutOrStdout(), outcome, path)
	} else {
		printOutcome(cmd.OutOrStdout(), outcome, path)
	}
	return nil
}

// loadConfig reads the --config path and maps failures to CLI errors.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			return nil, toCLIError(err, "")
		}
		return nil, apperrors.WrapWithMessage(err, apperrors.Configuration, "failed to load configuration",
			fmt.Sprintf("Check the syntax of %s and ~/.cadupdate/config.json", path))
	}
	return cfg, nil
}

func capabilitiesOf(w io.Writer) progress.TerminalCapabilities {
	if f, ok := w.(*os.File); ok {
		return progress.DetectTerminalCapabilities(f)
	}
	return progress.TerminalCapabilities{}
}

func outcomeStatus(outcome update.Outcome) string {
	if outcome.Download != nil {
		return outcome.Download.State().String()
	}
	return outcome.State.String()
}

func printPlainOutcome(w io.Writer, outcome update.Outcome, path string) {
	fmt.Fprintf(w, "status: %s\n", outcomeStatus(outcome))
	fmt.Fprintf(w, "current: %s\n", outcome.Current)
	fmt.Fprintf(w, "latest: %s\n", outcome.Latest)
	if outcome.Artifact != nil {
		fmt.Fprintf(w, "installer: %s\n", outcome.Artifact.Name)
		fmt.Fprintf(w, "url: %s\n", outcome.Artifact.URL)
	}
	if path != "" {
		fmt.Fprintf(w, "path: %s\n", path)
	}
}

func printOutcome(w io.Writer, outcome update.Outcome, path string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if !outcome.UpdateAvailable() {
		fmt.Fprintf(w, "%s Already running the latest version (%s)\n", green("✓"), outcome.Current)
		return
	}

	fmt.Fprintf(w, "%s New version available: %s → %s\n", green("→"), outcome.Current, green(outcome.Latest))
	fmt.Fprintf(w, "  Installer: %s\n", path)
	fmt.Fprintf(w, "  %s\n", dim("Run the installer to complete the update."))
}
