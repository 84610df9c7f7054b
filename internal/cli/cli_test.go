package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark43/cadupdate/internal/build"
	apperrors "github.com/mark43/cadupdate/internal/errors"
	"github.com/mark43/cadupdate/internal/testutil"
)

const installerBody = "MZ mercury installer"

// feedServer serves the feed API and download host for mark43/mercury-beta/mercury.
func feedServer(t *testing.T, latestStatus int, latest string, files string) *testutil.FeedServer {
	t.Helper()

	srv := testutil.NewFeedServer(t)
	srv.Respond(testutil.LatestPath("mark43", "mercury-beta", "mercury"), latestStatus, latest)
	srv.Respond(testutil.FilesPath("mark43", "mercury-beta", "mercury", "0.0.3"), http.StatusOK, files)
	srv.Respond(testutil.DownloadPath("mark43", "mercury-beta", "Mercury-Setup-0.0.3.exe"), http.StatusOK, installerBody)
	return srv
}

func writeConfig(t *testing.T, values map[string]any) string {
	t.Helper()
	data, err := json.Marshal(values)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "cadupdate.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func mercuryConfig(t *testing.T, srv *testutil.FeedServer) string {
	t.Helper()
	values := map[string]any{
		"owner":        "mark43",
		"repo":         "mercury-beta",
		"package_name": "mercury",
	}
	if srv != nil {
		values["feed_url"] = srv.URL
		values["download_url"] = srv.URL
	}
	return writeConfig(t, values)
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

const setupListing = `[
	{"name": "Mercury-Setup-0.0.3.exe", "path": "Mercury-Setup-0.0.3.exe"},
	{"name": "Mercury-Setup-0.0.3--alpha.exe", "path": "Mercury-Setup-0.0.3--alpha.exe"}
]`

func TestCheck_DownloadsInstaller(t *testing.T) {
	tmp := testutil.IsolateEnv(t)
	srv := feedServer(t, http.StatusOK, `{"name": "0.0.3"}`, setupListing)

	stdout, _, err := runCLI(t, "check", "--plain", "--current-version", "0.0.1", "-c", mercuryConfig(t, srv))
	require.NoError(t, err)

	assert.Contains(t, stdout, "status: downloaded\n")
	assert.Contains(t, stdout, "current: 0.0.1\n")
	assert.Contains(t, stdout, "latest: 0.0.3\n")
	assert.Contains(t, stdout, "installer: Mercury-Setup-0.0.3.exe\n")
	assert.Contains(t, stdout, "url: "+srv.URL+"/mark43/mercury-beta/Mercury-Setup-0.0.3.exe\n")

	var path string
	for _, line := range strings.Split(stdout, "\n") {
		if p, ok := strings.CutPrefix(line, "path: "); ok {
			path = p
		}
	}
	require.NotEmpty(t, path)
	assert.True(t, strings.HasPrefix(filepath.Base(filepath.Dir(path)), "up-"))
	assert.Equal(t, tmp, filepath.Dir(filepath.Dir(path)))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, installerBody, string(content))
}

func TestCheck_ProgressAndSummary(t *testing.T) {
	testutil.IsolateEnv(t)
	srv := feedServer(t, http.StatusOK, `{"name": "0.0.3"}`, setupListing)

	stdout, stderr, err := runCLI(t, "check", "--current-version", "0.0.1", "-c", mercuryConfig(t, srv))
	require.NoError(t, err)

	assert.Contains(t, stderr, "Checking for updates...")
	assert.Contains(t, stderr, "Update available: Mercury-Setup-0.0.3.exe")
	assert.Contains(t, stderr, "100.0%")
	assert.Contains(t, stdout, "New version available: 0.0.1")
	assert.Contains(t, stdout, "Mercury-Setup-0.0.3.exe")
}

func TestCheck_UpToDate(t *testing.T) {
	testutil.IsolateEnv(t)
	srv := feedServer(t, http.StatusOK, `{"name": "0.0.3"}`, setupListing)

	stdout, _, err := runCLI(t, "check", "--plain", "--current-version", "0.0.3", "-c", mercuryConfig(t, srv))
	require.NoError(t, err)
	assert.Contains(t, stdout, "status: not_available\n")
	assert.NotContains(t, stdout, "path:")
}

func TestCheck_Failures(t *testing.T) {
	tests := map[string]struct {
		status       int
		latest       string
		files        string
		current      string
		wantCategory apperrors.ErrorCategory
		wantExit     int
		wantMessage  string
	}{
		"feed unavailable": {
			status:       http.StatusInternalServerError,
			latest:       "",
			current:      "0.0.1",
			wantCategory: apperrors.Network,
			wantExit:     ExitNetwork,
			wantMessage:  "could not reach the update feed",
		},
		"malformed feed": {
			status:       http.StatusOK,
			latest:       "test",
			current:      "0.0.1",
			wantCategory: apperrors.Runtime,
			wantExit:     ExitFailure,
			wantMessage:  "unexpected response",
		},
		"invalid latest version": {
			status:       http.StatusOK,
			latest:       `{"name": "fake"}`,
			current:      "0.0.1",
			wantCategory: apperrors.Runtime,
			wantExit:     ExitFailure,
			wantMessage:  "fake",
		},
		"invalid installed version": {
			status:       http.StatusOK,
			latest:       `{"name": "0.0.3"}`,
			current:      "banana",
			wantCategory: apperrors.Runtime,
			wantExit:     ExitFailure,
			wantMessage:  "banana",
		},
		"no installer": {
			status:       http.StatusOK,
			latest:       `{"name": "0.0.3"}`,
			files:        `[{"name": "Mercury-Setup-0.0.2312.exe"}]`,
			current:      "0.0.1",
			wantCategory: apperrors.Runtime,
			wantExit:     ExitFailure,
			wantMessage:  "release 0.0.3 has no installer",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.IsolateEnv(t)
			files := tt.files
			if files == "" {
				files = setupListing
			}
			srv := feedServer(t, tt.status, tt.latest, files)

			_, _, err := runCLI(t, "check", "--plain", "--current-version", tt.current, "-c", mercuryConfig(t, srv))
			require.Error(t, err)

			cliErr := apperrors.AsCLIError(err)
			require.NotNil(t, cliErr, "expected CLIError, got %T: %v", err, err)
			assert.Equal(t, tt.wantCategory, cliErr.Category)
			assert.Contains(t, cliErr.Message, tt.wantMessage)
			assert.NotEmpty(t, cliErr.Remediation)
			assert.Equal(t, tt.wantExit, ExitCode(err))
		})
	}
}

func TestCheck_MissingConfiguration(t *testing.T) {
	testutil.IsolateEnv(t)
	path := writeConfig(t, map[string]any{"repo": "mercury-beta", "package_name": "mercury"})

	_, _, err := runCLI(t, "check", "-c", path)
	require.Error(t, err)

	cliErr := apperrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, apperrors.Configuration, cliErr.Category)
	assert.Contains(t, cliErr.Message, `"owner"`)
	assert.Equal(t, ExitInvalidConfig, ExitCode(err))
}

func TestCheck_MalformedConfigFile(t *testing.T) {
	testutil.IsolateEnv(t)
	path := filepath.Join(t.TempDir(), "cadupdate.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"owner": `), 0o644))

	_, _, err := runCLI(t, "check", "-c", path)
	require.Error(t, err)

	cliErr := apperrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, apperrors.Configuration, cliErr.Category)
	assert.Contains(t, cliErr.Message, "failed to load configuration")
}

func TestArgumentErrors(t *testing.T) {
	testutil.IsolateEnv(t)

	tests := map[string]struct {
		args      []string
		wantUsage string
		wantMsg   string
	}{
		"check with a positional argument": {
			args:      []string{"check", "extra"},
			wantUsage: "cadupdate check [flags]",
			wantMsg:   `unknown command "extra"`,
		},
		"check with an unknown flag": {
			args:      []string{"check", "--bogus"},
			wantUsage: "cadupdate check [flags]",
			wantMsg:   "unknown flag: --bogus",
		},
		"feed-url with a positional argument": {
			args:      []string{"feed-url", "x"},
			wantUsage: "cadupdate feed-url [flags]",
			wantMsg:   `unknown command "x"`,
		},
		"version with a positional argument": {
			args:      []string{"version", "now"},
			wantUsage: "cadupdate version [flags]",
			wantMsg:   `unknown command "now"`,
		},
		"flag without its value": {
			args:      []string{"check", "--current-version"},
			wantUsage: "cadupdate check [flags]",
			wantMsg:   "flag needs an argument",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)

			cliErr := apperrors.AsCLIError(err)
			require.NotNil(t, cliErr)
			assert.Equal(t, apperrors.Argument, cliErr.Category)
			assert.Equal(t, tt.wantUsage, cliErr.Usage)
			assert.Contains(t, cliErr.Message, tt.wantMsg)
			assert.Contains(t, cliErr.Remediation[0], "--help")
			assert.Equal(t, ExitInvalidArgs, ExitCode(err))
		})
	}
}

func TestCheck_DevBuildNeedsCurrentVersion(t *testing.T) {
	testutil.IsolateEnv(t)
	srv := feedServer(t, http.StatusOK, `{"name": "0.0.3"}`, setupListing)

	orig := build.Version
	t.Cleanup(func() { build.Version = orig })

	build.Version = "dev"
	_, _, err := runCLI(t, "check", "--plain", "-c", mercuryConfig(t, srv))
	require.Error(t, err)

	cliErr := apperrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, apperrors.Argument, cliErr.Category)
	assert.Contains(t, cliErr.Message, "development build")
	assert.Contains(t, cliErr.Remediation[0], "--current-version")
	assert.Equal(t, ExitInvalidArgs, ExitCode(err))
	assert.Zero(t, srv.Hits(testutil.LatestPath("mark43", "mercury-beta", "mercury")))

	build.Version = "0.0.1"
	stdout, _, err := runCLI(t, "check", "--plain", "-c", mercuryConfig(t, srv))
	require.NoError(t, err)
	assert.Contains(t, stdout, "current: 0.0.1\n")
	assert.Contains(t, stdout, "latest: 0.0.3\n")
}

func TestFeedURL(t *testing.T) {
	testutil.IsolateEnv(t)
	path := mercuryConfig(t, nil)

	tests := map[string]struct {
		args []string
		want string
	}{
		"latest": {
			args: []string{"feed-url", "-c", path},
			want: "https://api.bintray.com/packages/mark43/mercury-beta/mercury/versions/_latest\n",
		},
		"files for version": {
			args: []string{"feed-url", "--files-for", "0.0.3", "-c", path},
			want: "https://api.bintray.com/packages/mark43/mercury-beta/mercury/versions/0.0.3/files\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			stdout, _, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestFeedURL_EnvOverride(t *testing.T) {
	testutil.IsolateEnv(t)
	t.Setenv("CADUPDATE_OWNER", "mark43")
	t.Setenv("CADUPDATE_REPO", "mercury")
	t.Setenv("CADUPDATE_PACKAGE_NAME", "mercury-desktop")
	t.Setenv("CADUPDATE_FEED_URL", "http://feed.internal:8080")

	stdout, _, err := runCLI(t, "feed-url", "-c", filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Equal(t, "http://feed.internal:8080/packages/mark43/mercury/mercury-desktop/versions/_latest\n", stdout)
}

func TestConfigCommand(t *testing.T) {
	testutil.IsolateEnv(t)
	path := mercuryConfig(t, nil)

	stdout, _, err := runCLI(t, "config", "-c", path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "mark43", got["owner"])
	assert.Equal(t, "mercury-beta", got["repo"])
	assert.Equal(t, "mercury", got["package_name"])
	assert.Equal(t, "https://api.bintray.com", got["feed_url"])
	assert.Equal(t, "https://dl.bintray.com", got["download_url"])
	assert.Equal(t, true, got["show_progress"])
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "cadupdate version ")
	assert.Contains(t, stdout, "Go version: ")

	stdout, _, err = runCLI(t, "version", "--plain")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "cadupdate "))
	assert.Equal(t, 1, strings.Count(stdout, "\n"))
}
