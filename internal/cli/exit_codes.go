package cli

import (
	apperrors "github.com/mark43/cadupdate/internal/errors"
)

// Exit codes for the cadupdate CLI
const (
	ExitSuccess       = 0
	ExitFailure       = 1
	ExitInvalidConfig = 2
	ExitNetwork       = 3
	ExitInvalidArgs   = 4
)

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	cliErr := apperrors.AsCLIError(err)
	if cliErr == nil {
		return ExitFailure
	}
	switch cliErr.Category {
	case apperrors.Configuration:
		return ExitInvalidConfig
	case apperrors.Network:
		return ExitNetwork
	case apperrors.Argument:
		return ExitInvalidArgs
	default:
		return ExitFailure
	}
}
