package cli

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/MatthieuRouland/effectsize/pkg/params"
	"github.com/MatthieuRouland/effectsize/pkg/standardize"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v      float64
		digits int
		want   string
	}{
		{1.23456, 2, "1.23"},
		{-0.5, 3, "-0.500"},
		{2, 0, "2"},
		{math.NaN(), 2, missing},
		{math.Inf(1), 2, missing},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.v, tt.digits); got != tt.want {
			t.Errorf("formatNumber(%v, %d) = %q, want %q", tt.v, tt.digits, got, tt.want)
		}
	}
}

func TestRenderTable(t *testing.T) {
	tbl := params.New("Std_Coefficient", params.ColCI, params.ColCILow, params.ColCIHigh)
	rows := []params.Row{
		{Parameter: "(Intercept)", Values: map[string]float64{"Std_Coefficient": math.NaN(), params.ColCI: 0.9}},
		{Parameter: "x", Values: map[string]float64{"Std_Coefficient": 0.5, params.ColCI: 0.9, params.ColCILow: 0.1, params.ColCIHigh: 0.9}},
	}
	for _, r := range rows {
		if err := tbl.Append(r); err != nil {
			t.Fatal(err)
		}
	}

	out := renderTable(tbl, 2)
	for _, want := range []string{"Parameter", "CI_low (90%)", "CI_high (90%)", "0.50", missing} {
		if !strings.Contains(out, want) {
			t.Errorf("renderTable() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, " CI ") {
		t.Errorf("CI column should be folded into the headers:\n%s", out)
	}
}

func TestRenderScaleFactors(t *testing.T) {
	f := params.Missing("x")
	f.Type = "numeric"
	f.Basic = 2
	sf, err := params.NewScaleFactors(f)
	if err != nil {
		t.Fatal(err)
	}
	out := renderScaleFactors(sf, 1)
	for _, want := range []string{"Basic", "Response_Pseudo", "numeric", "2.0", missing} {
		if !strings.Contains(out, want) {
			t.Errorf("renderScaleFactors() missing %q:\n%s", want, out)
		}
	}
}

func TestPrintMetadata(t *testing.T) {
	var buf bytes.Buffer
	printMetadata(&buf, standardize.Metadata{
		Method:    standardize.MethodBasic,
		Requested: standardize.MethodPseudo,
		Robust:    true,
	})
	out := buf.String()
	if !strings.Contains(out, "basic (requested pseudo)") {
		t.Errorf("fallback not reported:\n%s", out)
	}
	if !strings.Contains(out, "median / MAD") {
		t.Errorf("robust deviations not reported:\n%s", out)
	}
	if strings.Contains(out, "2 SD") {
		t.Errorf("two-SD scaling reported but not set:\n%s", out)
	}
}
