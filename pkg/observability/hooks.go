// Package observability provides hooks for instrumenting standardization.
//
// Hooks are plain interfaces with no-op defaults. Callers pass an
// implementation through the options of the operation they run; there is
// no global registry, so concurrent callers never share hook state.
//
// # Usage
//
//	opts := standardize.Options{
//	    Method: standardize.MethodSmart,
//	    Hooks:  observability.NewLogHooks(logger),
//	}
//
// Libraries call hooks to emit events:
//
//	hooks.OnStandardizeStart(ctx, "smart", "parameters")
//	// ... rescale ...
//	hooks.OnStandardizeComplete(ctx, "basic", rows, duration, err)
package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Standardize Hooks
// =============================================================================

// StandardizeHooks receives events from the standardization orchestrators.
type StandardizeHooks interface {
	// OnStandardizeStart records the requested method and the kind of
	// input ("parameters", "table" or "posteriors").
	OnStandardizeStart(ctx context.Context, method, kind string)

	// OnFallback records a recoverable incompatibility. For method
	// fallbacks from and to are method names; for the robust flag they
	// are "robust" and "non-robust".
	OnFallback(ctx context.Context, from, to, reason string)

	// OnStandardizeComplete records the method actually applied.
	OnStandardizeComplete(ctx context.Context, method string, rows int, duration time.Duration, err error)
}

// =============================================================================
// Refit Hooks
// =============================================================================

// RefitHooks receives events from the refit collaborator.
type RefitHooks interface {
	OnRefitStart(ctx context.Context, response string, predictors int)
	OnRefitComplete(ctx context.Context, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStandardizeHooks is a no-op implementation of StandardizeHooks.
type NoopStandardizeHooks struct{}

func (NoopStandardizeHooks) OnStandardizeStart(context.Context, string, string) {}
func (NoopStandardizeHooks) OnFallback(context.Context, string, string, string) {}
func (NoopStandardizeHooks) OnStandardizeComplete(context.Context, string, int, time.Duration, error) {
}

// NoopRefitHooks is a no-op implementation of RefitHooks.
type NoopRefitHooks struct{}

func (NoopRefitHooks) OnRefitStart(context.Context, string, int)             {}
func (NoopRefitHooks) OnRefitComplete(context.Context, time.Duration, error) {}

// =============================================================================
// Logging Implementation
// =============================================================================

// LogHooks reports every event to a logger at debug level. It implements
// both StandardizeHooks and RefitHooks.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnStandardizeStart(_ context.Context, method, kind string) {
	h.logger.Debug("standardize start", "method", method, "input", kind)
}

func (h *LogHooks) OnFallback(_ context.Context, from, to, reason string) {
	h.logger.Debug("standardize fallback", "from", from, "to", to, "reason", reason)
}

func (h *LogHooks) OnStandardizeComplete(_ context.Context, method string, rows int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("standardize failed", "method", method, "duration", d, "err", err)
		return
	}
	h.logger.Debug("standardize complete", "method", method, "rows", rows, "duration", d)
}

func (h *LogHooks) OnRefitStart(_ context.Context, response string, predictors int) {
	h.logger.Debug("refit start", "response", response, "predictors", predictors)
}

func (h *LogHooks) OnRefitComplete(_ context.Context, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("refit failed", "duration", d, "err", err)
		return
	}
	h.logger.Debug("refit complete", "duration", d)
}
