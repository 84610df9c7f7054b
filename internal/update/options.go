package update

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultFeedURL is the package-hosting API that serves version metadata.
	DefaultFeedURL = "https://api.bintray.com"

	// DefaultDownloadURL is the host that serves release files.
	DefaultDownloadURL = "https://dl.bintray.com"

	// userAgent identifies the client to the feed and download hosts.
	userAgent = "cadupdate-client"
)

type settings struct {
	feedBase     string
	downloadBase string
	httpClient   *http.Client
	timeout      time.Duration
	logger       *zap.Logger
	tempDir      string
}

// Option configures a FeedClient or Updater.
type Option func(*settings)

// WithFeedBaseURL overrides the feed API host (scheme and host, no trailing path).
func WithFeedBaseURL(base string) Option {
	return func(s *settings) {
		if base != "" {
			s.feedBase = base
		}
	}
}

// WithDownloadBaseURL overrides the host that serves release files.
func WithDownloadBaseURL(base string) Option {
	return func(s *settings) {
		if base != "" {
			s.downloadBase = base
		}
	}
}

// WithHTTPClient sets the HTTP client used for feed and download requests.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithTimeout sets the HTTP client timeout. Zero keeps the client's own
// timeout. The client passed to WithHTTPClient is copied, not modified.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.timeout = timeout
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTempDir sets the parent directory for per-download temp directories.
// Empty uses os.TempDir.
func WithTempDir(dir string) Option {
	return func(s *settings) {
		s.tempDir = dir
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{
		feedBase:     DefaultFeedURL,
		downloadBase: DefaultDownloadURL,
		httpClient:   &http.Client{},
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.timeout > 0 {
		client := *s.httpClient
		client.Timeout = s.timeout
		s.httpClient = &client
	}
	return s
}
