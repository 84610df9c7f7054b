package update

import (
	"errors"
	"fmt"
)

// Kind classifies update failures.
type Kind string

const (
	KindUnknown            Kind = "unknown"
	KindConfiguration      Kind = "configuration"
	KindFeedUnavailable    Kind = "feed_unavailable"
	KindBadResponse        Kind = "bad_response"
	KindInvalidVersion     Kind = "invalid_version"
	KindNoMatchingArtifact Kind = "no_matching_artifact"
	KindDownload           Kind = "download"
)

// Error is a classified update failure. Op names the step that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf walks the error chain and returns the first Kind found.
func KindOf(err error) Kind {
	var updErr *Error
	if errors.As(err, &updErr) {
		return updErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err (or its unwrap chain) has the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
