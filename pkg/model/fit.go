package model

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/MatthieuRouland/effectsize/pkg/errors"
	"github.com/MatthieuRouland/effectsize/pkg/params"
)

// Estimate is one fitted fixed-effect coefficient.
type Estimate struct {
	Parameter string
	Value     float64
	SE        float64
}

// Fit describes an already-fitted model. Fitting is done elsewhere; a Fit
// only carries what introspection needs.
type Fit struct {
	Response     string     // declared response variable, e.g. "y"
	Terms        []string   // model-frame column names; Terms[0] is the response term, e.g. "log(y)"
	Data         *Frame     // original data
	Matrix       *Matrix    // fixed-effects design matrix
	Coefficients []Estimate // in model order
	DF           float64    // residual degrees of freedom; 0 or +Inf selects normal intervals
}

func (f Fit) validate() error {
	if f.Response == "" {
		return errors.New(errors.ErrCodeInvalidModel, "fit: response is required")
	}
	if f.Data == nil {
		return errors.New(errors.ErrCodeInvalidModel, "fit: data is required")
	}
	if _, ok := f.Data.Var(f.Response); !ok {
		return errors.New(errors.ErrCodeInvalidModel, "fit: response %q not found in data", f.Response)
	}
	if f.Matrix == nil {
		return errors.New(errors.ErrCodeInvalidModel, "fit: model matrix is required")
	}
	if f.Matrix.Rows() != f.Data.Rows() {
		return errors.New(errors.ErrCodeInvalidModel, "fit: model matrix has %d rows, data has %d", f.Matrix.Rows(), f.Data.Rows())
	}
	if len(f.Coefficients) == 0 {
		return errors.New(errors.ErrCodeInvalidModel, "fit: no coefficients")
	}
	names := make([]string, len(f.Coefficients))
	for i, c := range f.Coefficients {
		names[i] = c.Parameter
	}
	return errors.ValidateParameterNames(names)
}

// GLM adapts a Fit of a (generalized) linear model.
type GLM struct {
	fit  Fit
	info Info
}

// NewLinear creates a gaussian/identity model.
func NewLinear(fit Fit) (*GLM, error) {
	return NewGLM(fit, FamilyGaussian, LinkIdentity)
}

// NewGLM creates a generalized linear model of the given family and link.
func NewGLM(fit Fit, family Family, link Link) (*GLM, error) {
	if err := fit.validate(); err != nil {
		return nil, err
	}
	if len(fit.Terms) == 0 {
		fit.Terms = []string{fit.Response}
		for _, n := range fit.Data.Names() {
			if n != fit.Response {
				fit.Terms = append(fit.Terms, n)
			}
		}
	}
	return &GLM{
		fit: fit,
		info: Info{
			Family:   family,
			Link:     link,
			IsLinear: family == FamilyGaussian && link == LinkIdentity,
		},
	}, nil
}

func (m *GLM) Info() Info           { return m.info }
func (m *GLM) Response() string     { return m.fit.Response }
func (m *GLM) ModelFrame() []string { return slices.Clone(m.fit.Terms) }
func (m *GLM) Data() *Frame         { return m.fit.Data }
func (m *GLM) ModelMatrix() *Matrix { return m.fit.Matrix }

// Parameters returns Coefficient, SE, CI, CI_low, CI_high and the test
// statistic. Linear models with finite residual df use Student-t
// intervals; everything else uses normal intervals.
func (m *GLM) Parameters(ci float64, exponentiate bool) (*params.Table, error) {
	if err := errors.ValidateCI(ci); err != nil {
		return nil, err
	}
	df := m.fit.DF
	useT := m.info.IsLinear && df > 0 && !math.IsInf(df, 1)
	stat := params.ColZ
	cols := []string{params.ColCoefficient, params.ColSE, params.ColCI, params.ColCILow, params.ColCIHigh, stat}
	if useT {
		stat = params.ColT
		cols = []string{params.ColCoefficient, params.ColSE, params.ColCI, params.ColCILow, params.ColCIHigh, stat, params.ColDF}
	}

	q := normalQuantile(0.5 + ci/2)
	if useT {
		q = studentQuantile(q, df)
	}

	tbl := params.New(cols...)
	for _, e := range m.fit.Coefficients {
		est, se := e.Value, e.SE
		lo, hi := est-q*se, est+q*se
		vals := map[string]float64{
			params.ColCI: ci,
			stat:         est / se,
		}
		if useT {
			vals[params.ColDF] = df
		}
		if exponentiate {
			// delta method
			se = math.Exp(est) * se
			est, lo, hi = math.Exp(est), math.Exp(lo), math.Exp(hi)
		}
		vals[params.ColCoefficient] = est
		vals[params.ColSE] = se
		vals[params.ColCILow] = lo
		vals[params.ColCIHigh] = hi
		if err := tbl.Append(params.Row{Parameter: e.Parameter, Values: vals}); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func normalQuantile(p float64) float64 {
	return stats.NormPpf(p, 0, 1)
}

// studentQuantile converts the normal quantile z into the Student-t
// quantile with df degrees of freedom (Cornish-Fisher expansion,
// Abramowitz & Stegun 26.7.5).
func studentQuantile(z, df float64) float64 {
	z2 := z * z
	g1 := (z2 + 1) * z / 4
	g2 := ((5*z2+16)*z2 + 3) * z / 96
	g3 := (((3*z2+19)*z2+17)*z2 - 15) * z / 384
	g4 := ((((79*z2+776)*z2+1482)*z2-1920)*z2 - 945) * z / 92160
	return z + g1/df + g2/(df*df) + g3/(df*df*df) + g4/(df*df*df*df)
}

// MixedModel adds random grouping factors to a model.
type MixedModel struct {
	Model
	groups []string
}

// NewMixed wraps base as a mixed model with the given grouping factors.
// Every grouping factor must be a variable of the model data.
func NewMixed(base Model, groups ...string) (*MixedModel, error) {
	for _, g := range groups {
		if _, ok := base.Data().Var(g); !ok {
			return nil, errors.New(errors.ErrCodeInvalidModel, "mixed: grouping factor %q not found in data", g)
		}
	}
	return &MixedModel{Model: base, groups: slices.Clone(groups)}, nil
}

// Info marks the model as mixed.
func (m *MixedModel) Info() Info {
	i := m.Model.Info()
	i.IsMixed = true
	return i
}

// RandomGroups returns the grouping factors.
func (m *MixedModel) RandomGroups() []string { return slices.Clone(m.groups) }

// Parameters tags every row as a fixed effect.
func (m *MixedModel) Parameters(ci float64, exponentiate bool) (*params.Table, error) {
	tbl, err := m.Model.Parameters(ci, exponentiate)
	if err != nil {
		return nil, err
	}
	out := params.New(tbl.Columns()...)
	for _, r := range tbl.Rows() {
		r.Effects = "fixed"
		if err := out.Append(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// BayesianModel attaches posterior draws to a model. Point parameters are
// delegated to the wrapped model.
type BayesianModel struct {
	Model
	draws *params.Draws
}

// NewBayesian wraps base with posterior draws. If base is [Mixed], the
// returned model is too.
func NewBayesian(base Model, draws *params.Draws) (Bayesian, error) {
	if draws == nil {
		return nil, errors.New(errors.ErrCodeInvalidModel, "bayesian: draws are required")
	}
	b := &BayesianModel{Model: base, draws: draws}
	if mm, ok := base.(Mixed); ok {
		return &bayesianMixed{BayesianModel: b, groups: mm.RandomGroups()}, nil
	}
	return b, nil
}

// Info marks the model as Bayesian.
func (m *BayesianModel) Info() Info {
	i := m.Model.Info()
	i.IsBayesian = true
	return i
}

// Posterior returns a copy of the draws.
func (m *BayesianModel) Posterior() (*params.Draws, error) { return m.draws.Clone(), nil }

type bayesianMixed struct {
	*BayesianModel
	groups []string
}

func (m *bayesianMixed) RandomGroups() []string { return slices.Clone(m.groups) }
