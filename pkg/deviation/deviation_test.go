package deviation

import (
	"math"
	"testing"

	"github.com/MatthieuRouland/effectsize/pkg/model"
	"github.com/MatthieuRouland/effectsize/pkg/model/modeltest"
	"github.com/MatthieuRouland/effectsize/pkg/params"
)

const tol = 1e-4

func near(a, b float64) bool { return math.Abs(a-b) < tol }

func TestSpread(t *testing.T) {
	x := []float64{1, 2, 3, 4, 2, 3, 4, 5, 3, 4, 5, 6}

	s := Compute(x, false)
	if !near(s.Center, 3.5) || !near(s.Scale, math.Sqrt(23.0/11)) {
		t.Errorf("Compute(x, false) = %+v", s)
	}

	r := Compute(x, true)
	if !near(r.Center, 3.5) || !near(r.Scale, madConstant) {
		t.Errorf("Compute(x, true) = %+v, want median 3.5 and MAD 1.4826", r)
	}

	if got := Compute([]float64{7}, false); !math.IsNaN(got.Scale) || got.Center != 7 {
		t.Errorf("single value = %+v, want NaN scale", got)
	}
	if got := Compute(nil, false); !math.IsNaN(got.Center) {
		t.Errorf("empty = %+v, want NaN", got)
	}
	if got := Compute([]float64{1, math.NaN(), 3, math.Inf(1)}, false); !near(got.Center, 2) {
		t.Errorf("non-finite values should be ignored, got %+v", got)
	}
}

func TestCalculatorLinear(t *testing.T) {
	sf, err := NewCalculator().Compute(modeltest.Linear(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := sf.Lookup(model.InterceptName); ok {
		t.Error("intercept should have no scale factor")
	}
	if sf.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", sf.Len())
	}

	sdY := math.Sqrt(13)
	tests := []struct {
		param string
		basic float64
		smart float64
	}{
		{"x", math.Sqrt(23.0 / 11), math.Sqrt(23.0 / 11)},
		{"w", math.Sqrt(800.0 / 11), math.Sqrt(800.0 / 11)},
		{"gB", math.Sqrt(3.0 / 11), 1},
	}
	for _, tt := range tests {
		f, ok := sf.Lookup(tt.param)
		if !ok {
			t.Fatalf("no scale factor for %s", tt.param)
		}
		if !near(f.Basic, tt.basic) || !near(f.Smart, tt.smart) {
			t.Errorf("%s: basic=%v smart=%v, want %v %v", tt.param, f.Basic, f.Smart, tt.basic, tt.smart)
		}
		if !near(f.ResponseBasic, sdY) || f.ResponseBasic != f.ResponseSmart {
			t.Errorf("%s: response = %v / %v, want %v", tt.param, f.ResponseBasic, f.ResponseSmart, sdY)
		}
		if !math.IsNaN(f.Pseudo) || !math.IsNaN(f.ResponsePseudo) {
			t.Errorf("%s: pseudo columns should be NaN without IncludePseudo", tt.param)
		}
	}
}

func TestCalculatorTwoSDAndRobust(t *testing.T) {
	m := modeltest.Linear()
	plain, _ := NewCalculator().Compute(m, Options{})
	two, err := NewCalculator().Compute(m, Options{TwoSD: true})
	if err != nil {
		t.Fatal(err)
	}
	p, _ := plain.Lookup("x")
	d, _ := two.Lookup("x")
	if !near(d.Basic, 2*p.Basic) || !near(d.Smart, 2*p.Smart) {
		t.Errorf("two-SD should double predictor deviations: %v vs %v", d.Basic, p.Basic)
	}
	if d.ResponseBasic != p.ResponseBasic {
		t.Error("two-SD must not touch the response deviation")
	}

	rob, err := NewCalculator().Compute(m, Options{Robust: true})
	if err != nil {
		t.Fatal(err)
	}
	r, _ := rob.Lookup("x")
	if !near(r.Basic, madConstant) {
		t.Errorf("robust basic = %v, want %v", r.Basic, madConstant)
	}
}

func TestCalculatorNonLinearResponse(t *testing.T) {
	sf, err := NewCalculator().Compute(modeltest.Logistic(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range sf.Rows() {
		if f.ResponseBasic != 1 || f.ResponseSmart != 1 {
			t.Errorf("%s: response deviation = %v, want 1", f.Parameter, f.ResponseBasic)
		}
	}
}

func TestCalculatorPseudo(t *testing.T) {
	sf, err := NewCalculator().Compute(modeltest.Mixed("id"), Options{IncludePseudo: true})
	if err != nil {
		t.Fatal(err)
	}

	x, _ := sf.Lookup("x")
	if !near(x.Pseudo, math.Sqrt(15.0/11)) {
		t.Errorf("within predictor pseudo = %v, want SD of centred values", x.Pseudo)
	}
	if !near(x.ResponsePseudo, math.Sqrt(2.5)) {
		t.Errorf("within response pseudo = %v, want residual SD %v", x.ResponsePseudo, math.Sqrt(2.5))
	}

	w, _ := sf.Lookup("w")
	if !near(w.Pseudo, math.Sqrt(800.0/11)) {
		t.Errorf("between predictor pseudo = %v", w.Pseudo)
	}
	if !near(w.ResponsePseudo, math.Sqrt(14.4375)) {
		t.Errorf("between response pseudo = %v, want %v", w.ResponsePseudo, math.Sqrt(14.4375))
	}
}

func TestCalculatorPseudoNeedsOneGroup(t *testing.T) {
	for _, m := range []model.Model{modeltest.Linear(), modeltest.Mixed("id", "g")} {
		sf, err := NewCalculator().Compute(m, Options{IncludePseudo: true})
		if err != nil {
			t.Fatal(err)
		}
		for _, f := range sf.Rows() {
			if !math.IsNaN(f.Pseudo) {
				t.Errorf("%s: pseudo = %v, want NaN for groups %v", f.Parameter, f.Pseudo, model.RandomGroups(m))
			}
		}
	}
}

func TestSmartSpreadInteraction(t *testing.T) {
	data := modeltest.Data()
	terms := model.ClassifyParameters([]string{"x:gB", "x:w", "zzz"}, data)

	if got := smartSpread(terms[0], data, false).Scale; !near(got, math.Sqrt(23.0/11)) {
		t.Errorf("x:gB smart = %v, want SD(x)", got)
	}
	want := math.Sqrt(23.0/11) * math.Sqrt(800.0/11)
	if got := smartSpread(terms[1], data, false).Scale; !near(got, want) {
		t.Errorf("x:w smart = %v, want %v", got, want)
	}
	if got := smartSpread(terms[2], data, false).Scale; !math.IsNaN(got) {
		t.Errorf("unknown term smart = %v, want NaN", got)
	}
}

func TestGroupingDecompose(t *testing.T) {
	g := newGrouping(model.Variable{Name: "k", Numeric: []float64{1, 1, 2, 2}})
	if g.k() != 2 {
		t.Fatalf("k() = %d", g.k())
	}
	v := g.decompose([]float64{1, 1, 3, 3})
	if v.within != 0 {
		t.Errorf("within = %v, want 0", v.within)
	}
	// MSB = 4, n0 = 2
	if !near(v.between, math.Sqrt2) {
		t.Errorf("between = %v, want sqrt(2)", v.between)
	}

	single := newGrouping(model.Variable{Name: "k", Levels: []string{"a", "a"}})
	if v := single.decompose([]float64{1, 2}); !math.IsNaN(v.within) {
		t.Errorf("one group should give NaN, got %+v", v)
	}
}

var _ Provider = (*Calculator)(nil)

func TestProviderReturnsScaleFactors(t *testing.T) {
	var p Provider = NewCalculator()
	sf, err := p.Compute(modeltest.Linear(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	aligned := sf.Align([]string{model.InterceptName, "x"})
	if !math.IsNaN(aligned[0].Get(params.DeviationBasic)) {
		t.Error("aligned intercept should be missing")
	}
}
