package standardize

import (
	"slices"
	"strings"

	"github.com/MatthieuRouland/effectsize/pkg/model"
	"github.com/MatthieuRouland/effectsize/pkg/params"
)

// Output column names.
const (
	StdPrefix    = "Std_"
	ColOddsRatio = "Odds_ratio"
	ColRiskRatio = "Risk_ratio"
	ColIRR       = "IRR"
)

// Result is the outcome of a standardization call. It is not modified
// after it is returned.
type Result struct {
	// Table holds the standardized estimates with Std_-prefixed estimate
	// columns and the interval columns. Nil for posteriors.
	Table *params.Table

	// Draws holds the rescaled posterior draws. Nil for parameter tables.
	Draws *params.Draws

	// ScaleFactors are the deviations used. Nil for refit.
	ScaleFactors *params.ScaleFactors

	Metadata Metadata

	// Warnings lists the incompatibilities that caused a fallback, one
	// entry each.
	Warnings []string
}

// Metadata records how a result was produced.
type Metadata struct {
	Method          Method // method actually applied
	Requested       Method // method asked for
	Robust          bool   // after any fallback
	TwoSD           bool
	Exponentiate    bool
	ExcludeResponse bool
	ObjectName      string

	// StandardError is the detached SE column in row order, nil when the
	// table had none.
	StandardError []float64
}

// keptColumns are the non-estimate columns that survive shaping.
var keptColumns = []string{params.ColCI, params.ColCILow, params.ColCIHigh}

// coefficientColumn returns the display name of the coefficient column.
func coefficientColumn(info model.Info, exponentiate bool) string {
	switch info.CoefficientName(exponentiate) {
	case "Odds Ratio":
		return ColOddsRatio
	case "Risk Ratio":
		return ColRiskRatio
	case "IRR":
		return ColIRR
	}
	return params.ColCoefficient
}

// shape renames estimate columns for display, detaches the standard error
// and drops the test statistics, which no longer match the estimates.
func shape(tbl *params.Table, info model.Info, exponentiate bool) (*params.Table, []float64) {
	out := tbl.Clone()
	if name := coefficientColumn(info, exponentiate); name != params.ColCoefficient {
		out.Rename(params.ColCoefficient, name)
	}
	for _, col := range []string{
		params.ColCoefficient, ColOddsRatio, ColRiskRatio, ColIRR,
		params.ColMedian, params.ColMean, params.ColMAP,
	} {
		out.Rename(col, StdPrefix+col)
	}

	se, _ := out.Drop(params.ColSE)
	for _, col := range out.Columns() {
		if !strings.HasPrefix(col, StdPrefix) && !slices.Contains(keptColumns, col) {
			out.Drop(col)
		}
	}
	return out, se
}
