// Package logging constructs the shared structured logger used across the
// engine, storage, and CLI layers. It follows the teacher's convention of
// handing every subsystem a single *zap.SugaredLogger built once at process
// start, rather than letting each package configure its own.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-style zap logger scoped to the given component
// name (e.g. "scan", "dedup", "archivedb"). Output goes to stderr so stdout
// stays free for report bodies and piped data.
func New(component string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		// Logger construction failing means zap's own encoder config is
		// broken, not something callers can recover from meaningfully;
		// fall back to a no-op logger rather than panicking mid-scan.
		logger = zap.NewNop()
	}

	return logger.Named(component).Sugar()
}

// NewQuiet builds a logger that only surfaces warnings and above. Unlike
// New, it keeps zap's default time encoding.
func NewQuiet(component string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}

	return logger.Named(component).Sugar()
}
