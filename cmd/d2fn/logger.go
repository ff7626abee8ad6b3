package main

import (
	"github.com/nastools/d2fn/pkg/logging"
	"go.uber.org/zap"
)

// loggerFor returns a component-scoped logger for a subcommand. Every
// subcommand gets its own component name so log lines can be filtered by
// which part of the CLI produced them.
func loggerFor(component string) *zap.SugaredLogger {
	return logging.New(component)
}
