package params

import (
	"math"

	"github.com/MatthieuRouland/effectsize/pkg/errors"
)

// ScaleColumn names one deviation column of a scale-factor table.
type ScaleColumn string

// Deviation columns, one predictor/response pair per post-hoc variant.
const (
	DeviationBasic          ScaleColumn = "Deviation_Basic"
	DeviationSmart          ScaleColumn = "Deviation_Smart"
	DeviationPseudo         ScaleColumn = "Deviation_Pseudo"
	DeviationResponseBasic  ScaleColumn = "Deviation_Response_Basic"
	DeviationResponseSmart  ScaleColumn = "Deviation_Response_Smart"
	DeviationResponsePseudo ScaleColumn = "Deviation_Response_Pseudo"
)

// ScaleColumns returns every deviation column in display order.
func ScaleColumns() []ScaleColumn {
	return []ScaleColumn{
		DeviationBasic, DeviationSmart, DeviationPseudo,
		DeviationResponseBasic, DeviationResponseSmart, DeviationResponsePseudo,
	}
}

// ScaleFactor holds the candidate deviations of one parameter.
// Unavailable deviations are NaN.
type ScaleFactor struct {
	Parameter string
	Type      string // intercept, numeric, factor or interaction
	Variable  string // underlying data variable

	Basic          float64
	Smart          float64
	Pseudo         float64
	ResponseBasic  float64
	ResponseSmart  float64
	ResponsePseudo float64

	MeanBasic    float64
	MeanSmart    float64
	MeanResponse float64
}

// Missing returns a scale factor for parameter with every value NaN.
func Missing(parameter string) ScaleFactor {
	nan := math.NaN()
	return ScaleFactor{
		Parameter: parameter,
		Basic:     nan, Smart: nan, Pseudo: nan,
		ResponseBasic: nan, ResponseSmart: nan, ResponsePseudo: nan,
		MeanBasic: nan, MeanSmart: nan, MeanResponse: nan,
	}
}

// Get returns the deviation stored under c, or NaN for an unknown column.
func (f ScaleFactor) Get(c ScaleColumn) float64 {
	switch c {
	case DeviationBasic:
		return f.Basic
	case DeviationSmart:
		return f.Smart
	case DeviationPseudo:
		return f.Pseudo
	case DeviationResponseBasic:
		return f.ResponseBasic
	case DeviationResponseSmart:
		return f.ResponseSmart
	case DeviationResponsePseudo:
		return f.ResponsePseudo
	}
	return math.NaN()
}

// ScaleFactors is an ordered scale-factor table keyed by parameter. It may
// cover only a subset of a model's parameters.
type ScaleFactors struct {
	rows  []ScaleFactor
	index map[string]int
}

// NewScaleFactors builds a table from rows. Parameters must be unique.
func NewScaleFactors(rows ...ScaleFactor) (*ScaleFactors, error) {
	s := &ScaleFactors{index: make(map[string]int, len(rows))}
	for _, r := range rows {
		if err := errors.ValidateParameterName(r.Parameter); err != nil {
			return nil, err
		}
		if _, dup := s.index[r.Parameter]; dup {
			return nil, errors.New(errors.ErrCodeInvalidModel, "duplicate scale factor for %q", r.Parameter)
		}
		s.index[r.Parameter] = len(s.rows)
		s.rows = append(s.rows, r)
	}
	return s, nil
}

// Len returns the number of rows.
func (s *ScaleFactors) Len() int { return len(s.rows) }

// Rows returns a copy of the rows.
func (s *ScaleFactors) Rows() []ScaleFactor {
	out := make([]ScaleFactor, len(s.rows))
	copy(out, s.rows)
	return out
}

// Lookup returns the scale factor of parameter.
func (s *ScaleFactors) Lookup(parameter string) (ScaleFactor, bool) {
	i, ok := s.index[parameter]
	if !ok {
		return ScaleFactor{}, false
	}
	return s.rows[i], true
}

// Align returns one scale factor per parameter, in the given order.
// Parameters without a row get Missing.
func (s *ScaleFactors) Align(parameters []string) []ScaleFactor {
	out := make([]ScaleFactor, len(parameters))
	for i, p := range parameters {
		if f, ok := s.Lookup(p); ok {
			out[i] = f
		} else {
			out[i] = Missing(p)
		}
	}
	return out
}

// Column returns the values of c in row order.
func (s *ScaleFactors) Column(c ScaleColumn) []float64 {
	out := make([]float64, len(s.rows))
	for i, r := range s.rows {
		out[i] = r.Get(c)
	}
	return out
}
