// Package update implements the cadupdate auto-update client.
//
// The package includes:
//   - Semantic version parsing and comparison (version.go)
//   - Feed client for the package-hosting API (feed.go)
//   - Installer selection from a release file listing (selector.go)
//   - Streaming download into a fresh temp directory with progress (download.go)
//   - The Updater that runs check -> compare -> select -> download and
//     broadcasts lifecycle events (updater.go, events.go)
//
// CheckForUpdates never returns an error value. Every runtime failure is both
// emitted as an EventError and recorded on the returned Outcome, so callers
// without a listener can still tell success from failure.
package update
