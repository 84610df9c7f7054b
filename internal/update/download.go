package update

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// tempDirPattern names the per-download directory.
const tempDirPattern = "up-*"

// Progress reports how much of a download has completed.
// Total is zero or negative when the server did not advertise a length.
type Progress struct {
	Downloaded int64 `json:"downloaded"`
	Total      int64 `json:"total"`
}

// Known reports whether the total size is known.
func (p Progress) Known() bool {
	return p.Total > 0
}

// Percent returns completion in the range [0, 100], or 0 if the total is unknown.
func (p Progress) Percent() float64 {
	if !p.Known() {
		return 0
	}
	pct := float64(p.Downloaded) / float64(p.Total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// ProgressFunc receives download progress.
type ProgressFunc func(Progress)

// ProgressWriter wraps an io.Writer to report download progress.
type ProgressWriter struct {
	Writer   io.Writer
	Total    int64
	Current  int64
	OnUpdate func(current, total int64)

	lastCurrent int64
	lastTotal   int64
	reported    bool
}

// Write implements io.Writer and reports progress.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Current += int64(n)
	if n > 0 {
		pw.report(pw.Current, pw.Total)
	}
	return n, err
}

// Start reports zero progress against the advertised total.
func (pw *ProgressWriter) Start() {
	pw.report(0, pw.Total)
}

// Finish reports a final update whose total equals the bytes written,
// unless the last update already did.
func (pw *ProgressWriter) Finish() {
	if pw.reported && pw.lastCurrent == pw.Current && pw.lastTotal == pw.Current {
		return
	}
	pw.report(pw.Current, pw.Current)
}

func (pw *ProgressWriter) report(current, total int64) {
	pw.lastCurrent, pw.lastTotal, pw.reported = current, total, true
	if pw.OnUpdate != nil {
		pw.OnUpdate(current, total)
	}
}

// Downloader streams release files to disk.
type Downloader struct {
	httpClient *http.Client
	logger     *zap.Logger
	tempDir    string
}

// NewDownloader creates a downloader with the given HTTP client.
func NewDownloader(client *http.Client, opts ...Option) *Downloader {
	s := newSettings(opts)
	if client != nil {
		s.httpClient = client
	}
	return newDownloader(s)
}

func newDownloader(s *settings) *Downloader {
	return &Downloader{
		httpClient: s.httpClient,
		logger:     s.logger,
		tempDir:    s.tempDir,
	}
}

// Download fetches url into a newly created temp directory as fileName and
// returns the file path. Each call creates its own directory. The directory
// is left in place on success; removing it is the caller's job.
func (d *Downloader) Download(ctx context.Context, url, fileName string, onProgress ProgressFunc) (string, error) {
	const op = "download installer"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", newError(KindDownload, op, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", newError(KindDownload, op, fmt.Errorf("executing request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", newError(KindDownload, op, fmt.Errorf("download failed with status: %d", resp.StatusCode))
	}

	dir, err := os.MkdirTemp(d.tempDir, tempDirPattern)
	if err != nil {
		return "", newError(KindDownload, op, fmt.Errorf("creating temp directory: %w", err))
	}

	dest := filepath.Join(dir, safeFileName(fileName))
	d.logger.Debug("downloading installer",
		zap.String("url", url),
		zap.String("dest", dest),
		zap.Int64("contentLength", resp.ContentLength))

	if err := d.writeBody(resp, dest, onProgress); err != nil {
		_ = os.RemoveAll(dir)
		return "", newError(KindDownload, op, err)
	}

	return dest, nil
}

func (d *Downloader) writeBody(resp *http.Response, dest string, onProgress ProgressFunc) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	pw := &ProgressWriter{
		Writer: f,
		Total:  resp.ContentLength,
	}
	if onProgress != nil {
		pw.OnUpdate = func(current, total int64) {
			onProgress(Progress{Downloaded: current, Total: total})
		}
	}

	pw.Start()
	if _, err := io.Copy(pw, resp.Body); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing to file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	pw.Finish()

	return nil
}

// safeFileName strips any directory components from a feed-supplied name.
func safeFileName(name string) string {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." || base == "" {
		return "download"
	}
	return base
}
