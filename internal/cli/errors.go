package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/mark43/cadupdate/internal/config"
	apperrors "github.com/mark43/cadupdate/internal/errors"
	"github.com/mark43/cadupdate/internal/update"
)

// toCLIError maps configuration and update failures to CLI errors with
// remediation steps. latest is the feed version, when known.
func toCLIError(err error, latest string) error {
	if err == nil || apperrors.IsCLIError(err) {
		return err
	}

	var verr *config.ValidationError
	if errors.As(err, &verr) {
		if verr.Message == "is required" {
			return apperrors.MissingConfigField(verr.Field)
		}
		return apperrors.Wrap(err, apperrors.Configuration,
			"Fix the value in ~/.cadupdate/config.json, the local config file, or the CADUPDATE_ environment")
	}

	switch update.KindOf(err) {
	case update.KindConfiguration:
		return apperrors.Wrap(err, apperrors.Configuration,
			"Set owner, repo and package_name in the config file")
	case update.KindFeedUnavailable:
		return apperrors.FeedUnreachable(err.Error())
	case update.KindBadResponse:
		return apperrors.MalformedFeed(err.Error())
	case update.KindInvalidVersion:
		return apperrors.InvalidVersion(err.Error())
	case update.KindNoMatchingArtifact:
		return apperrors.NoInstallerFound(latest)
	case update.KindDownload:
		return apperrors.DownloadFailed(err.Error())
	default:
		return apperrors.Wrap(err, apperrors.Runtime)
	}
}

// printError renders err. Colors follow fatih/color's NO_COLOR and TTY detection.
func printError(w io.Writer, err error) {
	if color.NoColor {
		fmt.Fprint(w, apperrors.FormatErrorPlain(err))
		return
	}
	apperrors.FprintError(w, err)
}
