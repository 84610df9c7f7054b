// Package testutil provides test helpers shared by cadupdate packages.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
)

// FeedServer is an httptest server standing in for both the feed API and the
// download host. Unregistered paths answer 404.
type FeedServer struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	hits   map[string]int
}

// NewFeedServer starts a FeedServer that is closed when t finishes.
func NewFeedServer(t *testing.T) *FeedServer {
	t.Helper()

	f := &FeedServer{
		routes: make(map[string]http.HandlerFunc),
		hits:   make(map[string]int),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *FeedServer) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	route, ok := f.routes[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	route(w, r)
}

// Respond registers a fixed status and body for path.
func (f *FeedServer) Respond(path string, status int, body string) {
	f.Handle(path, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// Handle registers h for path.
func (f *FeedServer) Handle(path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = h
}

// Hits returns how many requests path has received.
func (f *FeedServer) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

// LatestPath is the latest-version endpoint path for a package.
func LatestPath(owner, repo, pkg string) string {
	return "/packages/" + owner + "/" + repo + "/" + pkg + "/versions/_latest"
}

// FilesPath is the file listing endpoint path for a package version.
func FilesPath(owner, repo, pkg, version string) string {
	return "/packages/" + owner + "/" + repo + "/" + pkg + "/versions/" + version + "/files"
}

// DownloadPath is the download path of a release file.
func DownloadPath(owner, repo, file string) string {
	return "/" + owner + "/" + repo + "/" + file
}

// IsolateEnv points HOME and TMPDIR at fresh temp directories and removes
// CADUPDATE_ variables for the duration of t. It returns the TMPDIR value.
// Tests calling it must not use t.Parallel().
func IsolateEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	tmp := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("TMPDIR", tmp)

	for _, env := range os.Environ() {
		if key, _, ok := strings.Cut(env, "="); ok && strings.HasPrefix(key, "CADUPDATE_") {
			t.Setenv(key, "")
			_ = os.Unsetenv(key)
		}
	}
	return tmp
}
