package main

import (
	"os"

	charmlog "github.com/charmbracelet/log"

	"github.com/dotnetup/dotnetup/internal/config"
)

// charmLogger adapts charmbracelet/log to the engine's Logger interface.
type charmLogger struct {
	l *charmlog.Logger
}

// newLogger builds the CLI logger. Verbose mode surfaces the engine's debug
// output (resolved versions, cache decisions, pruning); otherwise only
// warnings and errors reach the terminal, keeping stdout clean for the
// resolved path.
func newLogger(verbose bool) config.Logger {
	level := charmlog.WarnLevel
	if verbose {
		level = charmlog.DebugLevel
	}

	l := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           level,
		ReportTimestamp: false,
	})
	return &charmLogger{l: l}
}

func (c *charmLogger) Debug(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c *charmLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Info(msg, keysAndValues...)
}

func (c *charmLogger) Warn(msg string, keysAndValues ...interface{}) {
	c.l.Warn(msg, keysAndValues...)
}

func (c *charmLogger) Error(msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, keysAndValues...)
}
