package deviation

import (
	"math"

	"github.com/MatthieuRouland/effectsize/pkg/errors"
	"github.com/MatthieuRouland/effectsize/pkg/model"
	"github.com/MatthieuRouland/effectsize/pkg/params"
)

// Options controls which deviations are computed.
type Options struct {
	Robust        bool // median/MAD instead of mean/SD
	TwoSD         bool // double every predictor deviation
	IncludePseudo bool // compute the pseudo (within/between) columns
}

// Provider computes per-parameter scale factors for a model.
type Provider interface {
	Compute(m model.Model, opts Options) (*params.ScaleFactors, error)
}

// Calculator is the reference [Provider]. It derives every deviation
// from the model's data and design matrix.
type Calculator struct{}

// NewCalculator returns a Calculator.
func NewCalculator() *Calculator { return &Calculator{} }

// Compute returns one row per design-matrix column except the intercept,
// which has no meaningful deviation and is left to the rescaler as missing.
func (c *Calculator) Compute(m model.Model, opts Options) (*params.ScaleFactors, error) {
	mm := m.ModelMatrix()
	data := m.Data()
	if mm == nil || data == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "model exposes no design matrix or data")
	}

	names := mm.Names()
	terms := model.ClassifyParameters(names, data)
	resp := responseSpread(m, opts.Robust)

	factor := 1.0
	if opts.TwoSD {
		factor = 2
	}

	rows := make([]params.ScaleFactor, 0, len(names))
	for _, term := range terms {
		if term.Type == model.TypeIntercept {
			continue
		}
		col, _ := mm.Column(term.Parameter)
		basic := Compute(col, opts.Robust)
		smart := smartSpread(term, data, opts.Robust)

		f := params.Missing(term.Parameter)
		f.Type = term.Type
		f.Variable = term.Variable
		f.Basic = factor * basic.Scale
		f.MeanBasic = basic.Center
		f.Smart = factor * smart.Scale
		f.MeanSmart = smart.Center
		f.ResponseBasic = resp.Scale
		f.ResponseSmart = resp.Scale
		f.MeanResponse = resp.Center
		rows = append(rows, f)
	}

	if opts.IncludePseudo {
		fillPseudo(m, rows, factor)
	}
	return params.NewScaleFactors(rows...)
}

// responseSpread standardizes the response of linear models only; for
// other families the response keeps its scale.
func responseSpread(m model.Model, robust bool) Spread {
	if !m.Info().IsLinear {
		return Spread{Center: 0, Scale: 1}
	}
	v, ok := m.Data().Var(m.Response())
	if !ok || v.IsFactor() {
		return Spread{Center: math.NaN(), Scale: math.NaN()}
	}
	return Compute(v.Numeric, robust)
}

// smartSpread computes the deviation of a parameter on the scale of its
// original variable. Factor dummies are not rescaled; interactions use
// the product of their components' deviations.
func smartSpread(term model.Term, data *model.Frame, robust bool) Spread {
	switch term.Type {
	case model.TypeFactor:
		return Spread{Center: 0, Scale: 1}
	case model.TypeNumeric:
		v, ok := data.Var(term.Variable)
		if !ok || v.IsFactor() {
			return Spread{Center: math.NaN(), Scale: math.NaN()}
		}
		return Compute(v.Numeric, robust)
	case model.TypeInteraction:
		out := Spread{Center: 0, Scale: 1}
		for _, c := range term.Components {
			out.Scale *= smartSpread(c, data, robust).Scale
		}
		return out
	}
	return Spread{Center: math.NaN(), Scale: math.NaN()}
}
