package refit

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/MatthieuRouland/effectsize/pkg/deviation"
	"github.com/MatthieuRouland/effectsize/pkg/errors"
	"github.com/MatthieuRouland/effectsize/pkg/model"
	"github.com/MatthieuRouland/effectsize/pkg/observability"
	"github.com/MatthieuRouland/effectsize/pkg/standardize"
)

// Spec describes the model to refit.
type Spec struct {
	Info       model.Info
	Response   string
	Terms      []string // model-frame names, response term first
	Parameters []string // design-matrix columns
	Groups     []string // random grouping factors
}

// Fitter fits a model described by spec to data.
type Fitter interface {
	Fit(ctx context.Context, spec Spec, data *model.Frame) (model.Model, error)
}

// FitterFunc adapts a function to the Fitter interface.
type FitterFunc func(ctx context.Context, spec Spec, data *model.Frame) (model.Model, error)

// Fit calls f.
func (f FitterFunc) Fit(ctx context.Context, spec Spec, data *model.Frame) (model.Model, error) {
	return f(ctx, spec, data)
}

// Standardizer implements [standardize.Refitter]: it standardizes the
// model data and hands it to a Fitter.
type Standardizer struct {
	Fitter Fitter
	Logger *log.Logger
	Hooks  observability.RefitHooks
}

// NewStandardizer returns a Standardizer that refits through f.
func NewStandardizer(f Fitter, logger *log.Logger) *Standardizer {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Standardizer{Fitter: f, Logger: logger, Hooks: observability.NoopRefitHooks{}}
}

var _ standardize.Refitter = (*Standardizer)(nil)

// Refit standardizes the data of m and refits it.
func (s *Standardizer) Refit(ctx context.Context, m model.Model, opts standardize.RefitOptions) (model.Model, error) {
	if s.Fitter == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "refit: no fitter configured")
	}
	mm := m.ModelMatrix()
	if mm == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "refit: model exposes no design matrix")
	}
	hooks := s.Hooks
	if hooks == nil {
		hooks = observability.NoopRefitHooks{}
	}

	spec := Spec{
		Info:       m.Info(),
		Response:   m.Response(),
		Terms:      m.ModelFrame(),
		Parameters: mm.Names(),
		Groups:     model.RandomGroups(m),
	}
	start := time.Now()
	hooks.OnRefitStart(ctx, spec.Response, len(spec.Parameters))

	data, err := s.Data(m, opts)
	if err != nil {
		hooks.OnRefitComplete(ctx, time.Since(start), err)
		return nil, err
	}
	out, err := s.Fitter.Fit(ctx, spec, data)
	if err != nil {
		err = fmt.Errorf("fit: %w", err)
	}
	hooks.OnRefitComplete(ctx, time.Since(start), err)
	return out, err
}

// Data returns a standardized copy of the model data. Numeric variables
// are centred and divided by their deviation (twice the deviation with
// TwoSD). The response is standardized only for linear models and only
// when not excluded, and never by two deviations. Factors and random
// grouping variables are left untouched.
func (s *Standardizer) Data(m model.Model, opts standardize.RefitOptions) (*model.Frame, error) {
	data := m.Data()
	if data == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "refit: model exposes no data")
	}
	out := data.Clone()
	groups := model.RandomGroups(m)

	for _, name := range data.Names() {
		v, _ := data.Var(name)
		if v.IsFactor() || slices.Contains(groups, name) {
			continue
		}
		factor := 1.0
		if name == m.Response() {
			if !m.Info().IsLinear || opts.ExcludeResponse {
				continue
			}
		} else if opts.TwoSD {
			factor = 2
		}

		sp := deviation.Compute(v.Numeric, opts.Robust)
		if !finite(sp.Scale) || sp.Scale == 0 {
			s.logger().Debug("variable not standardized", "name", name, "scale", sp.Scale)
			continue
		}
		z := make([]float64, len(v.Numeric))
		for i, x := range v.Numeric {
			z[i] = (x - sp.Center) / (factor * sp.Scale)
		}
		if err := out.Replace(model.Variable{Name: name, Numeric: z}); err != nil {
			return nil, fmt.Errorf("standardize %s: %w", name, err)
		}
		s.logger().Debug("standardized variable", "name", name, "center", sp.Center, "scale", factor*sp.Scale)
	}
	return out, nil
}

func (s *Standardizer) logger() *log.Logger {
	if s.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return s.Logger
}
