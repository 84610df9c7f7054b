package update

import (
	"strings"

	"github.com/blang/semver/v4"
)

// ParseVersion parses a semantic version string such as "1.2.3" or
// "v1.2.3-beta.1". It returns nil if the string is not a valid version.
func ParseVersion(s string) *semver.Version {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "=")
	s = strings.TrimPrefix(s, "v")
	if s == "" {
		return nil
	}

	v, err := semver.Parse(s)
	if err != nil {
		return nil
	}
	return &v
}

// IsGreater reports whether a is strictly newer than b.
// A nil version on either side is never greater.
func IsGreater(a, b *semver.Version) bool {
	if a == nil || b == nil {
		return false
	}
	return a.GT(*b)
}
