package errors

import (
	"fmt"
	"strings"
)

// MissingConfigField reports a required updater setting that is not configured
func MissingConfigField(field string) *CLIError {
	env := "CADUPDATE_" + strings.ToUpper(field)
	return NewConfigError(
		fmt.Sprintf("required setting %q is not configured", field),
		fmt.Sprintf("Set %q in ~/.cadupdate/config.json or the local config file", field),
		fmt.Sprintf("Or export %s", env),
		"Run 'cadupdate config' to see the resolved configuration",
	)
}

// FeedUnreachable reports that the package feed could not be queried
func FeedUnreachable(detail string) *CLIError {
	return NewNetworkError(
		fmt.Sprintf("could not reach the update feed: %s", detail),
		"Check your network connection",
		"Verify feed_url with 'cadupdate config'",
		"Run 'cadupdate feed-url' and open the URL in a browser",
	)
}

// MalformedFeed reports that the feed answered with something unusable
func MalformedFeed(detail string) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("the update feed returned an unexpected response: %s", detail),
		"Verify owner, repo and package_name point at an existing package",
	)
}

// NoInstallerFound reports a release without a canonical Setup installer
func NoInstallerFound(version string) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("release %s has no installer matching *Setup*%s.exe", version, version),
		"Make sure the release uploads a file named <Product>-Setup-"+version+".exe",
	)
}

// DownloadFailed reports a failed installer transfer
func DownloadFailed(detail string) *CLIError {
	return NewNetworkError(
		fmt.Sprintf("installer download failed: %s", detail),
		"Re-run 'cadupdate check' to try again",
	)
}

// InvalidVersion reports a version string that is not valid semver
func InvalidVersion(detail string) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("cannot compare versions: %s", detail),
		"Pass a semantic version such as 1.2.3 with --current-version",
		"Check that the latest release on the feed is tagged with a semantic version",
	)
}
