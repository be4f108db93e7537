package standardize

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/MatthieuRouland/effectsize/pkg/deviation"
	"github.com/MatthieuRouland/effectsize/pkg/errors"
	"github.com/MatthieuRouland/effectsize/pkg/model"
	"github.com/MatthieuRouland/effectsize/pkg/observability"
)

// DefaultCI is the default confidence level.
const DefaultCI = 0.95

// Refitter refits a model on standardized data. It backs [MethodRefit].
type Refitter interface {
	Refit(ctx context.Context, m model.Model, opts RefitOptions) (model.Model, error)
}

// RefitOptions controls how a refitter standardizes the data.
type RefitOptions struct {
	Robust          bool // median/MAD instead of mean/SD
	TwoSD           bool // divide by two deviations
	ExcludeResponse bool // leave the response on its original scale
}

// Options configures a standardization call.
type Options struct {
	// Method is the standardization method. Empty means [DefaultMethod].
	Method Method `json:"method" toml:"method"`

	// CI is the confidence level of the intervals, in (0, 1).
	CI float64 `json:"ci" toml:"ci"`

	// Robust uses median/MAD instead of mean/SD.
	Robust bool `json:"robust" toml:"robust"`

	// TwoSD scales by two deviations instead of one.
	TwoSD bool `json:"two_sd" toml:"two_sd"`

	// Exponentiate reports exponentiated coefficients, e.g. odds ratios.
	Exponentiate bool `json:"exponentiate" toml:"exponentiate"`

	// ExcludeResponse keeps the response on its original scale.
	ExcludeResponse bool `json:"exclude_response" toml:"exclude_response"`

	// ObjectName is recorded in the result metadata.
	ObjectName string `json:"object_name,omitempty" toml:"-"`

	// Runtime collaborators (not serialized)
	Logger   *log.Logger                    `json:"-" toml:"-"`
	Hooks    observability.StandardizeHooks `json:"-" toml:"-"`
	Provider deviation.Provider             `json:"-" toml:"-"`
	Refitter Refitter                       `json:"-" toml:"-"`
	Rescaler *Rescaler                      `json:"-" toml:"-"`

	validated bool
}

// ValidateAndSetDefaults normalizes the method, checks the confidence
// level and fills in missing collaborators. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Method == "" {
		o.Method = DefaultMethod
	}
	m, err := ParseMethod(string(o.Method))
	if err != nil {
		return err
	}
	o.Method = m

	if o.CI == 0 {
		o.CI = DefaultCI
	}
	if err := errors.ValidateCI(o.CI); err != nil {
		return err
	}
	o.SetDefaults()
	o.validated = true
	return nil
}

// SetDefaults fills in collaborators that were left nil.
func (o *Options) SetDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Hooks == nil {
		o.Hooks = observability.NoopStandardizeHooks{}
	}
	if o.Provider == nil {
		o.Provider = deviation.NewCalculator()
	}
	if o.Rescaler == nil {
		o.Rescaler = NewRescaler()
	}
}

// refitOptions returns the options passed to the refitter.
func (o *Options) refitOptions() RefitOptions {
	return RefitOptions{Robust: o.Robust, TwoSD: o.TwoSD, ExcludeResponse: o.ExcludeResponse}
}

// deviationOptions returns the options passed to the scale-factor provider.
func (o *Options) deviationOptions(robust bool, method Method) deviation.Options {
	return deviation.Options{Robust: robust, TwoSD: o.TwoSD, IncludePseudo: method == MethodPseudo}
}
