package standardize

import (
	"math"
	"slices"

	"github.com/MatthieuRouland/effectsize/pkg/params"
)

// DefaultScalable returns the columns rescaled by default: point
// estimates, their standard error and interval bounds.
func DefaultScalable() []string {
	return []string{
		params.ColCoefficient, params.ColMedian, params.ColMean, params.ColMAP,
		params.ColSE, params.ColCILow, params.ColCIHigh,
	}
}

// Rescaler applies deviation ratios to parameter tables and posterior
// draws. It holds no state beyond its column set and is safe for
// concurrent use.
type Rescaler struct {
	scalable []string
}

// NewRescaler returns a Rescaler for the given columns, or for
// [DefaultScalable] when none are given.
func NewRescaler(scalable ...string) *Rescaler {
	if len(scalable) == 0 {
		scalable = DefaultScalable()
	}
	return &Rescaler{scalable: slices.Clone(scalable)}
}

// Scalable returns the columns the rescaler touches.
func (r *Rescaler) Scalable() []string { return slices.Clone(r.scalable) }

// Ratio returns the predictor/response deviation ratio of f under spec,
// or NaN when either deviation is unavailable.
func Ratio(f params.ScaleFactor, spec RescaleSpec) float64 {
	resp := 1.0
	if !spec.IgnoreResponse {
		resp = f.Get(spec.Response)
	}
	ratio := f.Get(spec.Predictor) / resp
	if !finite(ratio) {
		return math.NaN()
	}
	return ratio
}

// Rescale returns a copy of tbl with every scalable column multiplied by
// (or, with spec.Exponentiate, raised to) the row's deviation ratio.
//
// Rows without a scale factor or with an undefined ratio keep their
// original values. A row whose rescaled values contain any NaN or Inf,
// including values that were already missing, is reverted as a whole.
func (r *Rescaler) Rescale(tbl *params.Table, sf *params.ScaleFactors, spec RescaleSpec) *params.Table {
	out := tbl.Clone()
	cols := r.present(tbl)
	factors := sf.Align(tbl.Parameters())

	for i, f := range factors {
		ratio := Ratio(f, spec)
		if math.IsNaN(ratio) {
			continue
		}
		scaled := make([]float64, len(cols))
		ok := true
		for k, col := range cols {
			v := tbl.Value(i, col)
			scaled[k] = apply(v, ratio, spec.Exponentiate)
			if !finite(scaled[k]) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for k, col := range cols {
			out.Set(i, col, scaled[k])
		}
	}
	return out
}

// RescaleDraws returns a copy of draws with each parameter column
// multiplied by its deviation ratio. Draws are always rescaled
// multiplicatively; columns without a usable ratio are left as they are.
func (r *Rescaler) RescaleDraws(draws *params.Draws, sf *params.ScaleFactors, spec RescaleSpec) *params.Draws {
	out := draws.Clone()
	for j, f := range sf.Align(draws.Parameters()) {
		ratio := Ratio(f, spec)
		if math.IsNaN(ratio) {
			continue
		}
		out.Scale(j, ratio)
	}
	return out
}

// present returns the scalable columns that tbl carries.
func (r *Rescaler) present(tbl *params.Table) []string {
	var cols []string
	for _, c := range r.scalable {
		if tbl.Has(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

func apply(v, ratio float64, exponentiate bool) float64 {
	if exponentiate {
		return math.Pow(v, ratio)
	}
	return v * ratio
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
