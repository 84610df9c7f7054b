package notify

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/mark43/cadupdate/internal/update"
)

// dispatchTimeout bounds how long a notification may block the caller.
const dispatchTimeout = 5 * time.Second

// Handler turns update events into desktop notifications. Register Handle
// with Updater.On. When disabled every call is a no-op.
type Handler struct {
	enabled     bool
	sender      Sender
	logger      *zap.Logger
	interactive func() bool
}

// NewHandler creates a handler using the platform sender.
func NewHandler(enabled bool, logger *zap.Logger) *Handler {
	return NewHandlerWithSender(enabled, NewSender(), logger)
}

// NewHandlerWithSender creates a handler with a custom sender (for testing).
func NewHandlerWithSender(enabled bool, sender Sender, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		enabled:     enabled,
		sender:      sender,
		logger:      logger,
		interactive: isInteractive,
	}
}

// Handle sends a notification for update-downloaded and error events.
func (h *Handler) Handle(ev update.Event) {
	switch ev.Type {
	case update.EventUpdateDownloaded:
		name := "the update"
		if ev.Artifact != nil {
			name = ev.Artifact.Name
		}
		h.notify(NewNotification(
			"Update ready",
			fmt.Sprintf("%s has been downloaded and is ready to install", name),
			TypeSuccess,
		))
	case update.EventError:
		h.notify(NewNotification(
			"Update failed",
			fmt.Sprintf("Update check failed: %v", ev.Err),
			TypeFailure,
		))
	}
}

func (h *Handler) notify(n Notification) {
	if !h.isEnabled() {
		return
	}
	h.dispatch(n)
}

// isEnabled checks if notifications should be sent.
// Returns false if notifications are disabled, running in CI, or non-interactive.
func (h *Handler) isEnabled() bool {
	if !h.enabled {
		return false
	}
	if isCI() {
		return false
	}
	return h.interactive()
}

// isCI checks for common CI environment variables.
func isCI() bool {
	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"TRAVIS",
		"JENKINS_URL",
		"BUILDKITE",
		"DRONE",
		"TEAMCITY_VERSION",
		"TF_BUILD",           // Azure DevOps
		"CODEBUILD_BUILD_ID", // AWS CodeBuild
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// isInteractive checks stdout, then stderr, then stdin for a terminal.
func isInteractive() bool {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return true
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return true
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// dispatch sends a notification with a timeout. Failures are logged at debug
// level and otherwise ignored.
func (h *Handler) dispatch(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- h.sender.SendVisual(n)
	}()

	select {
	case err := <-done:
		if err != nil {
			h.logger.Debug("notification failed", zap.String("title", n.Title), zap.Error(err))
		}
	case <-ctx.Done():
		h.logger.Debug("notification timed out", zap.String("title", n.Title))
	}
}
