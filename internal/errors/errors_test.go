package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategoryString(t *testing.T) {
	t.Parallel()

	tests := map[ErrorCategory]string{
		Argument:          "Argument Error",
		Configuration:     "Configuration Error",
		Network:           "Network Error",
		Runtime:           "Runtime Error",
		ErrorCategory(42): "Error",
	}

	for category, want := range tests {
		assert.Equal(t, want, category.String())
	}
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
		wantUsage    string
		wantSteps    int
	}{
		"extra positional argument": {
			err: NewArgumentErrorWithUsage(`unknown command "extra" for "cadupdate check"`, "cadupdate check [flags]",
				"Run 'cadupdate check --help' for the accepted flags and arguments"),
			wantCategory: Argument,
			wantUsage:    "cadupdate check [flags]",
			wantSteps:    1,
		},
		"development build": {
			err:          NewArgumentError("cadupdate is a development build", "Pass --current-version", "Or set the version with ldflags"),
			wantCategory: Argument,
			wantSteps:    2,
		},
		"unreadable config file": {
			err:          NewConfigError("failed to load configuration", "Check the syntax of cadupdate.json"),
			wantCategory: Configuration,
			wantSteps:    1,
		},
		"feed timeout": {
			err:          NewNetworkError("could not reach the update feed: timeout"),
			wantCategory: Network,
		},
		"no installer": {
			err:          NewRuntimeError("release 0.0.3 has no installer", "Upload Mercury-Setup-0.0.3.exe"),
			wantCategory: Runtime,
			wantSteps:    1,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantCategory, tt.err.Category)
			assert.Equal(t, tt.wantUsage, tt.err.Usage)
			assert.Len(t, tt.err.Remediation, tt.wantSteps)
			assert.Equal(t, tt.err.Message, tt.err.Error())
			assert.NoError(t, tt.err.Unwrap())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Wrap(nil, Runtime))

	cause := fmt.Errorf("update: download: %w", io.ErrUnexpectedEOF)
	wrapped := Wrap(cause, Network, "Re-run 'cadupdate check'")

	require.NotNil(t, wrapped)
	assert.Equal(t, Network, wrapped.Category)
	assert.Equal(t, "update: download: unexpected EOF", wrapped.Message)
	assert.Equal(t, []string{"Re-run 'cadupdate check'"}, wrapped.Remediation)
	assert.ErrorIs(t, wrapped, io.ErrUnexpectedEOF)
}

func TestWrapWithMessage(t *testing.T) {
	t.Parallel()

	assert.Nil(t, WrapWithMessage(nil, Configuration, "failed to load configuration"))

	cause := errors.New("unexpected end of JSON input")
	wrapped := WrapWithMessage(cause, Configuration, "failed to load configuration", "Check the syntax of cadupdate.json")

	require.NotNil(t, wrapped)
	assert.Equal(t, Configuration, wrapped.Category)
	assert.Equal(t, "failed to load configuration: unexpected end of JSON input", wrapped.Message)
	assert.ErrorIs(t, wrapped, cause)
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	feedErr := FeedUnreachable("connection refused")

	tests := map[string]struct {
		err  error
		want *CLIError
	}{
		"direct":         {err: feedErr, want: feedErr},
		"wrapped by fmt": {err: fmt.Errorf("running check: %w", feedErr), want: feedErr},
		"plain error":    {err: errors.New("context canceled"), want: nil},
		"nil":            {err: nil, want: nil},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Same(t, tt.want, AsCLIError(tt.err))
			assert.Equal(t, tt.want != nil, IsCLIError(tt.err))
		})
	}
}
