package update

import "sync"

// VersionProvider reports the installed version of the host application.
type VersionProvider interface {
	Version() string
}

// StaticVersion is a VersionProvider backed by a settable string.
// Production code sets it once at startup; tests use SetVersion to simulate
// different installed versions.
type StaticVersion struct {
	mu      sync.RWMutex
	version string
}

// NewStaticVersion returns a provider reporting version.
func NewStaticVersion(version string) *StaticVersion {
	return &StaticVersion{version: version}
}

// Version returns the current version.
func (s *StaticVersion) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// SetVersion replaces the reported version.
func (s *StaticVersion) SetVersion(version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version = version
}
