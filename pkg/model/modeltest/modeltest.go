// Package modeltest provides small fitted-model fixtures for tests.
package modeltest

import (
	"github.com/MatthieuRouland/effectsize/pkg/model"
	"github.com/MatthieuRouland/effectsize/pkg/params"
)

// Data returns a 12-row frame with a numeric response y, numeric
// predictors x (varies within groups) and w (constant within groups), a
// factor g with levels A/B and a grouping factor id with three groups.
func Data() *model.Frame {
	f, err := model.NewFrame(
		model.Variable{Name: "y", Numeric: []float64{3, 5, 4, 6, 8, 7, 9, 11, 10, 12, 14, 13}},
		model.Variable{Name: "x", Numeric: []float64{1, 2, 3, 4, 2, 3, 4, 5, 3, 4, 5, 6}},
		model.Variable{Name: "w", Numeric: []float64{10, 10, 10, 10, 20, 20, 20, 20, 30, 30, 30, 30}},
		model.Variable{Name: "g", Levels: []string{"A", "B", "A", "B", "A", "B", "A", "B", "A", "B", "A", "B"}},
		model.Variable{Name: "id", Levels: []string{"1", "1", "1", "1", "2", "2", "2", "2", "3", "3", "3", "3"}},
	)
	if err != nil {
		panic(err)
	}
	return f
}

// Matrix returns the design matrix of y ~ x + w + g over [Data].
func Matrix(data *model.Frame) *model.Matrix {
	x, _ := data.Var("x")
	w, _ := data.Var("w")
	g, _ := data.Var("g")
	ones := make([]float64, data.Rows())
	gB := make([]float64, data.Rows())
	for i := range ones {
		ones[i] = 1
		if g.Levels[i] == "B" {
			gB[i] = 1
		}
	}
	m, err := model.NewMatrix(
		[]string{model.InterceptName, "x", "w", "gB"},
		[][]float64{ones, x.Numeric, w.Numeric, gB},
	)
	if err != nil {
		panic(err)
	}
	return m
}

// Fit returns the fit of y ~ x + w + g with the given coefficients for
// (Intercept), x, w and gB.
func Fit(coefs ...float64) model.Fit {
	if len(coefs) == 0 {
		coefs = []float64{1, 1.5, 0.2, 0.8}
	}
	data := Data()
	names := []string{model.InterceptName, "x", "w", "gB"}
	est := make([]model.Estimate, len(names))
	for i, n := range names {
		est[i] = model.Estimate{Parameter: n, Value: coefs[i], SE: 0.1 * float64(i+1)}
	}
	return model.Fit{
		Response:     "y",
		Terms:        []string{"y", "x", "w", "g"},
		Data:         data,
		Matrix:       Matrix(data),
		Coefficients: est,
		DF:           8,
	}
}

// Linear returns a linear model over [Fit].
func Linear() *model.GLM {
	m, err := model.NewLinear(Fit())
	if err != nil {
		panic(err)
	}
	return m
}

// Mixed returns a linear mixed model with the given grouping factors.
func Mixed(groups ...string) *model.MixedModel {
	m, err := model.NewMixed(Linear(), groups...)
	if err != nil {
		panic(err)
	}
	return m
}

// LogResponse returns a linear model of log(y) ~ x + w + g.
func LogResponse() *model.GLM {
	fit := Fit()
	fit.Terms = []string{"log(y)", "x", "w", "g"}
	m, err := model.NewLinear(fit)
	if err != nil {
		panic(err)
	}
	return m
}

// Logistic returns a binomial/logit model over [Fit].
func Logistic() *model.GLM {
	m, err := model.NewGLM(Fit(), model.FamilyBinomial, model.LinkLogit)
	if err != nil {
		panic(err)
	}
	return m
}

// Draws returns n posterior draws for every coefficient of [Fit], each
// column constant at the coefficient plus a small draw-dependent offset.
func Draws(n int) *params.Draws {
	fit := Fit()
	names := make([]string, len(fit.Coefficients))
	cols := make([][]float64, len(fit.Coefficients))
	for j, c := range fit.Coefficients {
		names[j] = c.Parameter
		cols[j] = make([]float64, n)
		for i := range cols[j] {
			cols[j][i] = c.Value + float64(i%10-5)/100
		}
	}
	d, err := params.NewDraws(names, cols)
	if err != nil {
		panic(err)
	}
	return d
}
