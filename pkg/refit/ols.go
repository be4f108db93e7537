package refit

import (
	"context"
	"math"
	"strings"

	"github.com/MatthieuRouland/effectsize/pkg/errors"
	"github.com/MatthieuRouland/effectsize/pkg/model"
)

// OLS fits gaussian/identity fixed-effects models by ordinary least
// squares. It rebuilds the design matrix from the data, so it supports
// intercepts, plain numeric predictors, factor dummies and their
// interactions, but not transformed terms.
type OLS struct{}

var _ Fitter = OLS{}

// Fit implements [Fitter].
func (OLS) Fit(ctx context.Context, spec Spec, data *model.Frame) (model.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !spec.Info.IsLinear || spec.Info.IsMixed || spec.Info.IsBayesian || len(spec.Groups) > 0 {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"ols: only fixed-effects linear models can be refit (family %s, link %s)", spec.Info.Family, spec.Info.Link)
	}
	if len(spec.Terms) > 0 && spec.Terms[0] != spec.Response {
		return nil, errors.New(errors.ErrCodeUnsupported, "ols: transformed response %q", spec.Terms[0])
	}

	mm, err := DesignMatrix(spec.Parameters, data)
	if err != nil {
		return nil, err
	}
	y, ok := data.Var(spec.Response)
	if !ok || y.IsFactor() {
		return nil, errors.New(errors.ErrCodeInvalidModel, "ols: response %q is not a numeric variable", spec.Response)
	}

	coef, se, df, err := leastSquares(mm, spec.Parameters, y.Numeric)
	if err != nil {
		return nil, err
	}
	est := make([]model.Estimate, len(spec.Parameters))
	for j, p := range spec.Parameters {
		est[j] = model.Estimate{Parameter: p, Value: coef[j], SE: se[j]}
	}
	return model.NewLinear(model.Fit{
		Response:     spec.Response,
		Terms:        spec.Terms,
		Data:         data,
		Matrix:       mm,
		Coefficients: est,
		DF:           df,
	})
}

// DesignMatrix builds the columns named by parameters from data.
func DesignMatrix(parameters []string, data *model.Frame) (*model.Matrix, error) {
	terms := model.ClassifyParameters(parameters, data)
	cols := make([][]float64, len(terms))
	for j, t := range terms {
		col, err := column(t, data)
		if err != nil {
			return nil, err
		}
		cols[j] = col
	}
	return model.NewMatrix(parameters, cols)
}

func column(t model.Term, data *model.Frame) ([]float64, error) {
	n := data.Rows()
	switch t.Type {
	case model.TypeIntercept:
		out := make([]float64, n)
		for i := range out {
			out[i] = 1
		}
		return out, nil
	case model.TypeNumeric:
		if t.Parameter != t.Variable {
			return nil, errors.New(errors.ErrCodeUnsupported, "ols: transformed term %q", t.Parameter)
		}
		v, _ := data.Var(t.Variable)
		return append([]float64(nil), v.Numeric...), nil
	case model.TypeFactor:
		v, ok := data.Var(t.Variable)
		if !ok || !v.IsFactor() {
			return nil, errors.New(errors.ErrCodeUnsupported, "ols: %q is not a factor dummy", t.Parameter)
		}
		level := strings.TrimPrefix(model.StripFactor(t.Parameter), t.Variable)
		out := make([]float64, n)
		for i, l := range v.Levels {
			if l == level {
				out[i] = 1
			}
		}
		return out, nil
	case model.TypeInteraction:
		out := make([]float64, n)
		for i := range out {
			out[i] = 1
		}
		for _, c := range t.Components {
			col, err := column(c, data)
			if err != nil {
				return nil, err
			}
			for i := range out {
				out[i] *= col[i]
			}
		}
		return out, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "ols: cannot build column for %q", t.Parameter)
}

// leastSquares solves the normal equations by Cholesky decomposition and
// returns the coefficients, their standard errors and the residual df.
func leastSquares(mm *model.Matrix, names []string, y []float64) (coef, se []float64, df float64, err error) {
	n, p := mm.Rows(), len(names)
	if n <= p {
		return nil, nil, 0, errors.New(errors.ErrCodeInvalidModel, "ols: %d observations for %d parameters", n, p)
	}
	x := make([][]float64, p)
	for j, name := range names {
		x[j], _ = mm.Column(name)
	}

	xtx := make([][]float64, p)
	xty := make([]float64, p)
	for a := 0; a < p; a++ {
		xtx[a] = make([]float64, p)
		for b := 0; b < p; b++ {
			xtx[a][b] = dot(x[a], x[b])
		}
		xty[a] = dot(x[a], y)
	}

	l, ok := cholesky(xtx)
	if !ok {
		return nil, nil, 0, errors.New(errors.ErrCodeInvalidModel, "ols: design matrix is rank deficient")
	}
	coef = cholSolve(l, xty)

	var rss float64
	for i := 0; i < n; i++ {
		fit := 0.0
		for j := 0; j < p; j++ {
			fit += x[j][i] * coef[j]
		}
		r := y[i] - fit
		rss += r * r
	}
	df = float64(n - p)
	sigma2 := rss / df

	se = make([]float64, p)
	for j := 0; j < p; j++ {
		e := make([]float64, p)
		e[j] = 1
		se[j] = math.Sqrt(sigma2 * cholSolve(l, e)[j])
	}
	return coef, se, df, nil
}

// cholesky returns the lower-triangular factor of a symmetric positive
// definite matrix.
func cholesky(a [][]float64) ([][]float64, bool) {
	p := len(a)
	l := make([][]float64, p)
	for i := range l {
		l[i] = make([]float64, p)
	}
	for i := 0; i < p; i++ {
		for j := 0; j <= i; j++ {
			sum := a[i][j]
			for k := 0; k < j; k++ {
				sum -= l[i][k] * l[j][k]
			}
			if i == j {
				if sum <= 1e-12*math.Max(1, a[i][i]) {
					return nil, false
				}
				l[i][i] = math.Sqrt(sum)
			} else {
				l[i][j] = sum / l[j][j]
			}
		}
	}
	return l, true
}

// cholSolve solves L Lᵀ x = b.
func cholSolve(l [][]float64, b []float64) []float64 {
	p := len(b)
	z := make([]float64, p)
	for i := 0; i < p; i++ {
		sum := b[i]
		for k := 0; k < i; k++ {
			sum -= l[i][k] * z[k]
		}
		z[i] = sum / l[i][i]
	}
	x := make([]float64, p)
	for i := p - 1; i >= 0; i-- {
		sum := z[i]
		for k := i + 1; k < p; k++ {
			sum -= l[k][i] * x[k]
		}
		x[i] = sum / l[i][i]
	}
	return x
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
