package standardize

import (
	"context"
	"fmt"
	"time"

	"github.com/MatthieuRouland/effectsize/pkg/errors"
	"github.com/MatthieuRouland/effectsize/pkg/model"
)

// Posteriors returns the posterior draws of m, standardized.
//
// The same method checks and fallbacks as [Parameters] apply. Every draw
// of a parameter is multiplied by the same deviation ratio; draws are never
// exponentiated, so opts.Exponentiate and opts.CI are ignored.
func Posteriors(ctx context.Context, m model.Model, opts Options) (*Result, error) {
	b, ok := m.(model.Bayesian)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "model has no posterior draws")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	opts.Exponentiate = false
	if opts.Method == MethodRefit && opts.Refitter == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "method %q requires a refitter", MethodRefit)
	}

	start := time.Now()
	opts.Hooks.OnStandardizeStart(ctx, string(opts.Method), "posteriors")

	var (
		res *Result
		err error
	)
	if opts.Method == MethodRefit {
		res, err = refitPosteriors(ctx, b, &opts)
	} else {
		res, err = rescalePosteriors(ctx, b, &opts)
	}

	complete(ctx, &opts, res, start, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func refitPosteriors(ctx context.Context, m model.Bayesian, opts *Options) (*Result, error) {
	refit, err := opts.Refitter.Refit(ctx, m, opts.refitOptions())
	if err != nil {
		return nil, fmt.Errorf("refit: %w", err)
	}
	b, ok := refit.(model.Bayesian)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "refit model has no posterior draws")
	}
	draws, err := b.Posterior()
	if err != nil {
		return nil, fmt.Errorf("posterior: %w", err)
	}
	return &Result{
		Draws:    draws,
		Metadata: opts.metadata(MethodRefit, opts.Robust, nil),
	}, nil
}

func rescalePosteriors(ctx context.Context, m model.Bayesian, opts *Options) (*Result, error) {
	draws, err := m.Posterior()
	if err != nil {
		return nil, fmt.Errorf("posterior: %w", err)
	}

	checker := Checker{Logger: opts.Logger, Hooks: opts.Hooks}
	d := checker.Check(ctx, opts.Method, opts.Robust, m, draws.Parameters())

	spec, err := Resolve(d.Method)
	if err != nil {
		return nil, err
	}
	spec.IgnoreResponse = opts.ExcludeResponse

	sf, err := opts.Provider.Compute(m, opts.deviationOptions(d.Robust, d.Method))
	if err != nil {
		return nil, fmt.Errorf("scale factors: %w", err)
	}
	opts.Logger.Debug("rescaling posterior",
		"method", d.Method,
		"parameters", draws.NumParameters(),
		"draws", draws.NumDraws())

	return &Result{
		Draws:        opts.Rescaler.RescaleDraws(draws, sf, spec),
		ScaleFactors: sf,
		Metadata:     opts.metadata(d.Method, d.Robust, nil),
		Warnings:     d.Warnings,
	}, nil
}
