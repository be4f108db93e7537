package refit

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/MatthieuRouland/effectsize/pkg/errors"
	"github.com/MatthieuRouland/effectsize/pkg/model"
	"github.com/MatthieuRouland/effectsize/pkg/model/modeltest"
	"github.com/MatthieuRouland/effectsize/pkg/params"
	"github.com/MatthieuRouland/effectsize/pkg/standardize"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func specOf(m model.Model) Spec {
	return Spec{
		Info:       m.Info(),
		Response:   m.Response(),
		Terms:      m.ModelFrame(),
		Parameters: m.ModelMatrix().Names(),
		Groups:     model.RandomGroups(m),
	}
}

func simpleFrame(t *testing.T) *model.Frame {
	t.Helper()
	f, err := model.NewFrame(
		model.Variable{Name: "y", Numeric: []float64{2, 4, 5, 4, 5}},
		model.Variable{Name: "x", Numeric: []float64{1, 2, 3, 4, 5}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestOLSSimpleRegression(t *testing.T) {
	spec := Spec{
		Info:       model.Info{Family: model.FamilyGaussian, Link: model.LinkIdentity, IsLinear: true},
		Response:   "y",
		Terms:      []string{"y", "x"},
		Parameters: []string{model.InterceptName, "x"},
	}
	m, err := OLS{}.Fit(context.Background(), spec, simpleFrame(t))
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := m.Parameters(0.95, false)
	if err != nil {
		t.Fatal(err)
	}

	if got := tbl.Value(0, params.ColCoefficient); !near(got, 2.2) {
		t.Errorf("intercept = %v, want 2.2", got)
	}
	if got := tbl.Value(1, params.ColCoefficient); !near(got, 0.6) {
		t.Errorf("slope = %v, want 0.6", got)
	}
	if got := tbl.Value(1, params.ColSE); !near(got, math.Sqrt(0.08)) {
		t.Errorf("SE = %v, want %v", got, math.Sqrt(0.08))
	}
	if got := tbl.Value(1, params.ColDF); got != 3 {
		t.Errorf("df = %v, want 3", got)
	}
}

func TestOLSRejects(t *testing.T) {
	ctx := context.Background()
	lin := modeltest.Linear()

	tests := []struct {
		name string
		spec func() Spec
		code errors.Code
	}{
		{"logistic", func() Spec { return specOf(modeltest.Logistic()) }, errors.ErrCodeUnsupported},
		{"mixed", func() Spec { return specOf(modeltest.Mixed("id")) }, errors.ErrCodeUnsupported},
		{"log response", func() Spec { return specOf(modeltest.LogResponse()) }, errors.ErrCodeUnsupported},
		{"transformed predictor", func() Spec {
			s := specOf(lin)
			s.Parameters = []string{model.InterceptName, "log(x)"}
			return s
		}, errors.ErrCodeUnsupported},
		{"rank deficient", func() Spec {
			s := specOf(lin)
			s.Parameters = []string{model.InterceptName, "gA", "gB"}
			return s
		}, errors.ErrCodeInvalidModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (OLS{}).Fit(ctx, tt.spec(), lin.Data()); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDesignMatrix(t *testing.T) {
	data := modeltest.Data()
	mm, err := DesignMatrix([]string{model.InterceptName, "x", "gB", "factor(g)B", "x:gB"}, data)
	if err != nil {
		t.Fatal(err)
	}
	want := modeltest.Matrix(data)
	for _, name := range []string{model.InterceptName, "x", "gB"} {
		got, _ := mm.Column(name)
		exp, _ := want.Column(name)
		for i := range exp {
			if got[i] != exp[i] {
				t.Fatalf("%s[%d] = %v, want %v", name, i, got[i], exp[i])
			}
		}
	}
	fb, _ := mm.Column("factor(g)B")
	inter, _ := mm.Column("x:gB")
	if fb[1] != 1 || fb[0] != 0 || inter[1] != 2 || inter[0] != 0 {
		t.Errorf("factor(g)B = %v, x:gB = %v", fb, inter)
	}
}

func TestStandardizerData(t *testing.T) {
	s := NewStandardizer(OLS{}, nil)
	m := modeltest.Mixed("id")

	data, err := s.Data(m, standardize.RefitOptions{})
	if err != nil {
		t.Fatal(err)
	}
	x, _ := data.Var("x")
	if !near(x.Numeric[0], (1-3.5)/math.Sqrt(23.0/11)) {
		t.Errorf("x[0] = %v", x.Numeric[0])
	}
	y, _ := data.Var("y")
	if !near(y.Numeric[0], (3-8.5)/math.Sqrt(13)) {
		t.Errorf("y[0] = %v", y.Numeric[0])
	}
	g, _ := data.Var("g")
	id, _ := data.Var("id")
	if g.Levels[0] != "A" || id.Levels[0] != "1" {
		t.Error("factors and grouping variables should be untouched")
	}

	orig, _ := m.Data().Var("x")
	if orig.Numeric[0] != 1 {
		t.Error("model data was modified")
	}
}

func TestStandardizerDataOptions(t *testing.T) {
	s := NewStandardizer(OLS{}, nil)

	two, err := s.Data(modeltest.Linear(), standardize.RefitOptions{TwoSD: true, ExcludeResponse: true})
	if err != nil {
		t.Fatal(err)
	}
	x, _ := two.Var("x")
	if !near(x.Numeric[0], (1-3.5)/(2*math.Sqrt(23.0/11))) {
		t.Errorf("two-SD x[0] = %v", x.Numeric[0])
	}
	y, _ := two.Var("y")
	if y.Numeric[0] != 3 {
		t.Errorf("excluded response was standardized: %v", y.Numeric[0])
	}

	glm, err := s.Data(modeltest.Logistic(), standardize.RefitOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if y, _ := glm.Var("y"); y.Numeric[0] != 3 {
		t.Error("non-linear response should keep its scale")
	}

	rob, err := s.Data(modeltest.Linear(), standardize.RefitOptions{Robust: true})
	if err != nil {
		t.Fatal(err)
	}
	if x, _ := rob.Var("x"); !near(x.Numeric[0], (1-3.5)/1.4826) {
		t.Errorf("robust x[0] = %v", x.Numeric[0])
	}
}

func TestRefitMatchesBasicForNumericPredictors(t *testing.T) {
	ctx := context.Background()
	lin := modeltest.Linear()
	orig, err := OLS{}.Fit(ctx, specOf(lin), lin.Data())
	if err != nil {
		t.Fatal(err)
	}

	basic, err := standardize.Parameters(ctx, orig, standardize.Options{Method: standardize.MethodBasic})
	if err != nil {
		t.Fatal(err)
	}
	refit, err := standardize.Parameters(ctx, orig, standardize.Options{
		Method:   standardize.MethodRefit,
		Refitter: NewStandardizer(OLS{}, nil),
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{"x", "w"} {
		b := basic.Table.Value(basic.Table.Index(p), "Std_Coefficient")
		r := refit.Table.Value(refit.Table.Index(p), "Std_Coefficient")
		if math.Abs(b-r) > 1e-8 {
			t.Errorf("%s: refit %v, basic %v", p, r, b)
		}
	}
}

type recordingHooks struct{ starts, completes int }

func (h *recordingHooks) OnRefitStart(context.Context, string, int) { h.starts++ }
func (h *recordingHooks) OnRefitComplete(_ context.Context, _ time.Duration, _ error) {
	h.completes++
}

func TestRefitHooksAndErrors(t *testing.T) {
	hooks := &recordingHooks{}
	s := NewStandardizer(OLS{}, nil)
	s.Hooks = hooks

	if _, err := s.Refit(context.Background(), modeltest.Logistic(), standardize.RefitOptions{}); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
	if hooks.starts != 1 || hooks.completes != 1 {
		t.Errorf("hooks = %+v", hooks)
	}

	var empty Standardizer
	if _, err := empty.Refit(context.Background(), modeltest.Linear(), standardize.RefitOptions{}); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("no fitter error = %v", err)
	}
}

func TestFitterFunc(t *testing.T) {
	called := false
	f := FitterFunc(func(context.Context, Spec, *model.Frame) (model.Model, error) {
		called = true
		return modeltest.Linear(), nil
	})
	if _, err := NewStandardizer(f, nil).Refit(context.Background(), modeltest.Mixed("id"), standardize.RefitOptions{}); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("fitter was not called")
	}
}
