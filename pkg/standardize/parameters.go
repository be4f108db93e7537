package standardize

import (
	"context"
	"fmt"
	"time"

	"github.com/MatthieuRouland/effectsize/pkg/errors"
	"github.com/MatthieuRouland/effectsize/pkg/model"
	"github.com/MatthieuRouland/effectsize/pkg/params"
)

// Parameters returns the standardized parameters of m.
//
// With [MethodRefit] the model is refit on standardized data through
// opts.Refitter and its parameters are returned as they are. Every other
// method extracts the raw parameters of m and rescales them by the
// deviations from opts.Provider, after downgrading requests the model
// cannot honour.
func Parameters(ctx context.Context, m model.Model, opts Options) (*Result, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "model is required")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Method == MethodRefit && opts.Refitter == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "method %q requires a refitter", MethodRefit)
	}

	start := time.Now()
	opts.Hooks.OnStandardizeStart(ctx, string(opts.Method), "parameters")

	var (
		res *Result
		err error
	)
	if opts.Method == MethodRefit {
		res, err = refitParameters(ctx, m, &opts)
	} else {
		var tbl *params.Table
		tbl, err = m.Parameters(opts.CI, opts.Exponentiate)
		if err != nil {
			err = fmt.Errorf("parameters: %w", err)
		} else {
			res, err = rescaleTable(ctx, tbl, m, &opts)
		}
	}

	complete(ctx, &opts, res, start, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Table standardizes a parameter table that was already extracted from m.
// opts.Exponentiate must say whether tbl holds exponentiated estimates.
// Refit is rejected: it needs the model, not its summary.
func Table(ctx context.Context, tbl *params.Table, m model.Model, opts Options) (*Result, error) {
	if tbl == nil || m == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "table and model are required")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Method == MethodRefit {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"method %q cannot be applied to a parameter table; standardize the model instead", MethodRefit)
	}

	start := time.Now()
	opts.Hooks.OnStandardizeStart(ctx, string(opts.Method), "table")
	res, err := rescaleTable(ctx, tbl, m, &opts)
	complete(ctx, &opts, res, start, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func refitParameters(ctx context.Context, m model.Model, opts *Options) (*Result, error) {
	refit, err := opts.Refitter.Refit(ctx, m, opts.refitOptions())
	if err != nil {
		return nil, fmt.Errorf("refit: %w", err)
	}
	tbl, err := refit.Parameters(opts.CI, opts.Exponentiate)
	if err != nil {
		return nil, fmt.Errorf("parameters: %w", err)
	}
	out, se := shape(tbl, refit.Info(), opts.Exponentiate)
	return &Result{
		Table:    out,
		Metadata: opts.metadata(MethodRefit, opts.Robust, se),
	}, nil
}

func rescaleTable(ctx context.Context, tbl *params.Table, m model.Model, opts *Options) (*Result, error) {
	checker := Checker{Logger: opts.Logger, Hooks: opts.Hooks}
	d := checker.Check(ctx, opts.Method, opts.Robust, m, tbl.Parameters())

	spec, err := Resolve(d.Method)
	if err != nil {
		return nil, err
	}
	spec.Exponentiate = opts.Exponentiate
	spec.IgnoreResponse = opts.ExcludeResponse

	sf, err := opts.Provider.Compute(m, opts.deviationOptions(d.Robust, d.Method))
	if err != nil {
		return nil, fmt.Errorf("scale factors: %w", err)
	}
	opts.Logger.Debug("rescaling parameters",
		"method", d.Method,
		"predictor", spec.Predictor,
		"response", spec.Response,
		"exponentiate", spec.Exponentiate)

	out, se := shape(opts.Rescaler.Rescale(tbl, sf, spec), m.Info(), opts.Exponentiate)
	return &Result{
		Table:        out,
		ScaleFactors: sf,
		Metadata:     opts.metadata(d.Method, d.Robust, se),
		Warnings:     d.Warnings,
	}, nil
}

func (o *Options) metadata(method Method, robust bool, se []float64) Metadata {
	return Metadata{
		Method:          method,
		Requested:       o.Method,
		Robust:          robust,
		TwoSD:           o.TwoSD,
		Exponentiate:    o.Exponentiate,
		ExcludeResponse: o.ExcludeResponse,
		ObjectName:      o.ObjectName,
		StandardError:   se,
	}
}

func complete(ctx context.Context, opts *Options, res *Result, start time.Time, err error) {
	method, rows := string(opts.Method), 0
	if res != nil {
		method = string(res.Metadata.Method)
		switch {
		case res.Table != nil:
			rows = res.Table.Len()
		case res.Draws != nil:
			rows = res.Draws.NumParameters()
		}
	}
	opts.Hooks.OnStandardizeComplete(ctx, method, rows, time.Since(start), err)
}
