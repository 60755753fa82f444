// Package logging builds the hclog loggers used by pkgext commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

// DefaultLevel keeps command output quiet unless asked otherwise.
const DefaultLevel = "warn"

const textPrefix = "📦 "

// Options controls logger construction.
type Options struct {
	Name   string
	Level  string
	JSON   bool
	Output io.Writer
}

// NewLogger creates an hclog logger with UTC ISO timestamps. Text output is
// prefixed per line; JSON output is left untouched so it stays parseable.
func NewLogger(opts Options) hclog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	if !opts.JSON {
		output = NewPrefixWriter(textPrefix, output)
	}

	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.LevelFromString(DefaultLevel)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       opts.Name,
		Level:      level,
		JSONFormat: opts.JSON,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// Discard returns a logger that drops everything. Library code falls back to
// it when callers pass no logger.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
