// Package notify shows a desktop notification when an update installer has
// finished downloading or an update check fails.
//
// Notifications use native OS tools through os/exec, so the package needs no
// CGO:
//
//   - macOS: osascript
//   - Linux: notify-send (requires DISPLAY or WAYLAND_DISPLAY)
//   - Windows: PowerShell toast notifications
//
// Missing tools degrade to a no-op. Notifications are opt-in and are
// suppressed in CI and non-interactive sessions.
//
// # Usage
//
//	handler := notify.NewHandler(cfg.Notify, logger)
//	updater.On(handler.Handle)
package notify
