// Package cli implements the effectsize command-line interface.
//
// The commands read a fitted model from a JSON, YAML or TOML file and
// report its standardized coefficients. The CLI is built using cobra and
// logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - parameters: standardized coefficients of a model
//   - posteriors: standardized posterior draws of a Bayesian model
//   - info: the deviations used to rescale each parameter
//   - methods: the available standardization methods
//
// # Configuration
//
// Defaults for every standardization flag can be set in the [standardize]
// table of $XDG_CONFIG_HOME/effectsize/config.toml. Flags override it.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// traces every standardization call and fallback.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Standardized 4 parameters (1ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
