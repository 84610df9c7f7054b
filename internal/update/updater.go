package update

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// State is a step of a single update check.
type State int

const (
	StateIdle State = iota
	StateChecking
	StateNotAvailable
	StateCheckFailed
	StateSelecting
	StateSelectionFailed
	StateDownloading
	StateDownloaded
	StateDownloadFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChecking:
		return "checking"
	case StateNotAvailable:
		return "not_available"
	case StateCheckFailed:
		return "check_failed"
	case StateSelecting:
		return "selecting"
	case StateSelectionFailed:
		return "selection_failed"
	case StateDownloading:
		return "downloading"
	case StateDownloaded:
		return "downloaded"
	case StateDownloadFailed:
		return "download_failed"
	default:
		return "unknown"
	}
}

// Failed reports whether s is a terminal failure state.
func (s State) Failed() bool {
	return s == StateCheckFailed || s == StateSelectionFailed || s == StateDownloadFailed
}

// Outcome is the result of CheckForUpdates. State is the state reached when
// the call returned; when an update is available it is StateDownloading and
// Download tracks the transfer.
type Outcome struct {
	State    State
	Current  string
	Latest   string
	Artifact *Artifact
	Download *PendingDownload
	Err      error
}

// UpdateAvailable reports whether a newer release with an installer was found.
func (o Outcome) UpdateAvailable() bool {
	return o.Artifact != nil
}

// PendingDownload tracks an installer download started by CheckForUpdates.
type PendingDownload struct {
	Artifact Artifact

	done  chan struct{}
	mu    sync.Mutex
	state State
	path  string
	err   error
}

func newPendingDownload(artifact Artifact) *PendingDownload {
	return &PendingDownload{
		Artifact: artifact,
		done:     make(chan struct{}),
		state:    StateDownloading,
	}
}

// Done is closed when the download finishes, successfully or not.
func (p *PendingDownload) Done() <-chan struct{} {
	return p.done
}

// State returns StateDownloading until the transfer finishes, then
// StateDownloaded or StateDownloadFailed.
func (p *PendingDownload) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Wait blocks until the download finishes or ctx is done and returns the
// installer path. Abandoning Wait does not stop the transfer; cancel the
// context given to CheckForUpdates for that.
func (p *PendingDownload) Wait(ctx context.Context) (string, error) {
	select {
	case <-p.done:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path, p.err
}

func (p *PendingDownload) finish(path string, err error) {
	p.mu.Lock()
	p.path, p.err = path, err
	if err != nil {
		p.state = StateDownloadFailed
	} else {
		p.state = StateDownloaded
	}
	p.mu.Unlock()
	close(p.done)
}

// Updater checks the feed for a newer release and downloads its installer.
// Calls to CheckForUpdates are independent; no state carries over between them.
type Updater struct {
	cfg        Config
	app        VersionProvider
	feed       *FeedClient
	downloader *Downloader
	logger     *zap.Logger
	events     emitter
}

// NewUpdater validates cfg and creates an Updater. app supplies the installed
// application version and is read on every check.
func NewUpdater(cfg Config, app VersionProvider, opts ...Option) (*Updater, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if app == nil {
		return nil, newError(KindConfiguration, "create updater", fmt.Errorf("version provider is required"))
	}

	s := newSettings(opts)
	return &Updater{
		cfg:        cfg,
		app:        app,
		feed:       newFeedClient(cfg, s),
		downloader: newDownloader(s),
		logger:     s.logger.With(zap.String("package", cfg.Owner+"/"+cfg.Repo+"/"+cfg.PackageName)),
	}, nil
}

// ValidateConfig checks that owner, repo, and package name are all set.
func ValidateConfig(cfg Config) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var missing []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
	}
	if len(missing) == 0 {
		return newError(KindConfiguration, "validate config", err)
	}
	return newError(KindConfiguration, "validate config",
		fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", ")))
}

// Config returns the updater's package configuration.
func (u *Updater) Config() Config {
	return u.cfg
}

// FeedURL returns the latest-version endpoint.
func (u *Updater) FeedURL() string {
	return u.feed.FeedURL()
}

// FilesURL returns the file-listing endpoint for version.
func (u *Updater) FilesURL(version string) string {
	return u.feed.FilesURL(version)
}

// DownloadURL returns the download location of a release file.
func (u *Updater) DownloadURL(fileName string) string {
	return u.feed.DownloadURL(fileName)
}

// On registers a handler for all events and returns a function that removes it.
func (u *Updater) On(h EventHandler) func() {
	return u.events.on(h)
}

// CheckForUpdates runs one check: fetch the latest version, compare it with
// the installed version, select the installer, and start downloading it.
// It returns once the download has started; follow it through
// Outcome.Download or the update-downloaded event. The download is bound to
// ctx.
//
// Failures are never returned as a separate error: they are emitted as
// EventError and recorded in Outcome.Err.
func (u *Updater) CheckForUpdates(ctx context.Context) Outcome {
	u.events.emit(Event{Type: EventCheckingForUpdate})

	out := Outcome{State: StateChecking}

	info, err := u.feed.LatestVersion(ctx)
	if err != nil {
		return u.fail(out, StateCheckFailed, err)
	}
	out.Latest = info.Name

	latest := ParseVersion(info.Name)
	if latest == nil {
		return u.fail(out, StateCheckFailed, newError(KindInvalidVersion, "parse latest version",
			fmt.Errorf("latest version from update server is not a valid semantic version: %q", info.Name)))
	}
	out.Latest = latest.String()

	rawCurrent := u.app.Version()
	out.Current = rawCurrent
	current := ParseVersion(rawCurrent)
	if current == nil {
		return u.fail(out, StateCheckFailed, newError(KindInvalidVersion, "parse current version",
			fmt.Errorf("installed version is not a valid semantic version: %q", rawCurrent)))
	}
	out.Current = current.String()

	if !IsGreater(latest, current) {
		u.logger.Debug("no update available",
			zap.String("current", out.Current), zap.String("latest", out.Latest))
		out.State = StateNotAvailable
		u.events.emit(Event{Type: EventUpdateNotAvailable, Current: out.Current, Latest: out.Latest})
		return out
	}

	out.State = StateSelecting
	files, err := u.feed.FilesForVersion(ctx, out.Latest)
	if err != nil {
		return u.fail(out, StateSelectionFailed, err)
	}

	file, ok := SelectArtifact(files, out.Latest)
	if !ok {
		return u.fail(out, StateSelectionFailed, newError(KindNoMatchingArtifact, "select installer",
			fmt.Errorf("no valid update file found for version %s among %d file(s)", out.Latest, len(files))))
	}

	artifact := Artifact{
		Name: file.Name,
		Path: file.Path,
		URL:  u.feed.DownloadURL(file.Name),
		Size: file.Size,
	}
	out.Artifact = &artifact

	u.logger.Info("update available",
		zap.String("current", out.Current),
		zap.String("latest", out.Latest),
		zap.String("artifact", artifact.Name))
	u.events.emit(Event{Type: EventUpdateAvailable, Artifact: &artifact})

	out.State = StateDownloading
	out.Download = u.startDownload(ctx, artifact)
	return out
}

func (u *Updater) startDownload(ctx context.Context, artifact Artifact) *PendingDownload {
	pending := newPendingDownload(artifact)

	go func() {
		path, err := u.downloader.Download(ctx, artifact.URL, artifact.Name, func(p Progress) {
			u.events.emit(Event{Type: EventDownloadProgress, Artifact: &artifact, Progress: p})
		})
		// Events go out before Done closes so waiters have seen them.
		defer pending.finish(path, err)

		if err != nil {
			u.logger.Debug("download failed", zap.String("url", artifact.URL), zap.Error(err))
			u.events.emit(Event{Type: EventError, Err: err})
			return
		}

		u.logger.Info("update downloaded", zap.String("path", path))
		u.events.emit(Event{Type: EventUpdateDownloaded, Artifact: &artifact, Path: path})
	}()

	return pending
}

func (u *Updater) fail(out Outcome, state State, err error) Outcome {
	u.logger.Debug("update check failed",
		zap.String("state", state.String()),
		zap.String("kind", string(KindOf(err))),
		zap.Error(err))
	out.State = state
	out.Err = err
	u.events.emit(Event{Type: EventError, Err: err})
	return out
}
