package update

import "strings"

// installerMarker must appear in the canonical installer's file name.
const installerMarker = "Setup"

// Artifact is the installer selected for download.
type Artifact struct {
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
	Size int64  `json:"size,omitempty"`
}

// SelectArtifact returns the first file whose name ends with "<version>.exe"
// and contains "Setup". Installer names follow <Product>-Setup-<version>.exe,
// so suffixed variants such as "...-0.0.3--alpha.exe" do not match.
func SelectArtifact(files []FileEntry, version string) (FileEntry, bool) {
	suffix := version + ".exe"
	for _, f := range files {
		if strings.HasSuffix(f.Name, suffix) && strings.Contains(f.Name, installerMarker) {
			return f, true
		}
	}
	return FileEntry{}, false
}
