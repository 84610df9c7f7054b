package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// Config identifies the package whose releases are tracked.
type Config struct {
	Owner       string `json:"owner" validate:"required"`
	Repo        string `json:"repo" validate:"required"`
	PackageName string `json:"package_name" validate:"required"`
}

// VersionInfo is the feed's latest-version response.
type VersionInfo struct {
	Name string `json:"name"`
}

// FileEntry is one file in a release's file listing.
type FileEntry struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Size    int64  `json:"size,omitempty"`
	SHA1    string `json:"sha1,omitempty"`
	Created string `json:"created,omitempty"`
}

// FeedClient queries the package-hosting API.
type FeedClient struct {
	cfg          Config
	feedBase     string
	downloadBase string
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewFeedClient creates a feed client for cfg. The config is not validated
// here; NewUpdater does that.
func NewFeedClient(cfg Config, opts ...Option) *FeedClient {
	return newFeedClient(cfg, newSettings(opts))
}

func newFeedClient(cfg Config, s *settings) *FeedClient {
	return &FeedClient{
		cfg:          cfg,
		feedBase:     strings.TrimRight(s.feedBase, "/"),
		downloadBase: strings.TrimRight(s.downloadBase, "/"),
		httpClient:   s.httpClient,
		logger:       s.logger,
	}
}

// FeedURL returns the latest-version endpoint for the configured package.
func (c *FeedClient) FeedURL() string {
	return c.packageURL() + "/versions/_latest"
}

// FilesURL returns the file-listing endpoint for version.
func (c *FeedClient) FilesURL(version string) string {
	return fmt.Sprintf("%s/versions/%s/files", c.packageURL(), url.PathEscape(version))
}

// DownloadURL returns the download location of a release file.
func (c *FeedClient) DownloadURL(fileName string) string {
	return fmt.Sprintf("%s/%s/%s/%s", c.downloadBase,
		url.PathEscape(c.cfg.Owner), url.PathEscape(c.cfg.Repo), url.PathEscape(fileName))
}

func (c *FeedClient) packageURL() string {
	return fmt.Sprintf("%s/packages/%s/%s/%s", c.feedBase,
		url.PathEscape(c.cfg.Owner), url.PathEscape(c.cfg.Repo), url.PathEscape(c.cfg.PackageName))
}

// LatestVersion fetches the newest published version of the package.
func (c *FeedClient) LatestVersion(ctx context.Context) (*VersionInfo, error) {
	var info VersionInfo
	if err := c.getJSON(ctx, "fetch latest version", c.FeedURL(), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// FilesForVersion fetches the files published for version.
func (c *FeedClient) FilesForVersion(ctx context.Context, version string) ([]FileEntry, error) {
	var files []FileEntry
	if err := c.getJSON(ctx, "fetch release files", c.FilesURL(version), &files); err != nil {
		return nil, err
	}
	return files, nil
}

// getJSON performs a single GET and decodes the body into out.
func (c *FeedClient) getJSON(ctx context.Context, op, rawURL string, out any) error {
	c.logger.Debug("requesting feed", zap.String("op", op), zap.String("url", rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return newError(KindFeedUnavailable, op, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newError(KindFeedUnavailable, op, fmt.Errorf("executing request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return newError(KindFeedUnavailable, op, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newError(KindFeedUnavailable, op, fmt.Errorf("reading response: %w", err))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return newError(KindBadResponse, op, fmt.Errorf("decoding response: %w", err))
	}

	c.logger.Debug("feed response decoded", zap.String("op", op), zap.Int("bytes", len(body)))
	return nil
}
