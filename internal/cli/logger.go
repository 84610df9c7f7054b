package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a development logger when --debug is set, otherwise a
// console logger on stderr that only reports warnings and errors.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("creating debug logger: %w", err)
		}
		return logger, nil
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}
