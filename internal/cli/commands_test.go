package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MatthieuRouland/effectsize/pkg/params"
)

// execute runs the root command with args and an empty config, returning
// the command output and the log output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.Out = &out

	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.toml")))
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

type jsonReport struct {
	ReportID string `json:"report_id"`
	Metadata struct {
		Method          string `json:"std_method"`
		Requested       string `json:"requested_method"`
		TwoSD           bool   `json:"two_sd"`
		IncludeResponse bool   `json:"include_response"`
		ObjectName      string `json:"object_name"`
	} `json:"metadata"`
	Columns []string `json:"columns"`
	Rows    []struct {
		Parameter string              `json:"parameter"`
		Values    map[string]*float64 `json:"values"`
	} `json:"rows"`
	Draws []struct {
		Parameter string     `json:"parameter"`
		Values    []*float64 `json:"values"`
	} `json:"draws"`
}

func decodeReport(t *testing.T, data []byte) jsonReport {
	t.Helper()
	var r jsonReport
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("decode report: %v\n%s", err, data)
	}
	return r
}

// ratioX is sd(x) / sd(y) for testdata/linear.json.
var ratioX = math.Sqrt(3.5 / 2.7)

func TestParametersJSON(t *testing.T) {
	out, _, err := execute(t, "parameters", "testdata/linear.json", "-m", "posthoc", "-f", "json")
	if err != nil {
		t.Fatal(err)
	}
	r := decodeReport(t, []byte(out))

	if r.ReportID == "" {
		t.Error("report_id should be set")
	}
	if r.Metadata.Method != "posthoc" || r.Metadata.ObjectName != "linear" || !r.Metadata.IncludeResponse {
		t.Errorf("metadata = %+v", r.Metadata)
	}
	if len(r.Rows) != 3 || r.Rows[1].Parameter != "x" {
		t.Fatalf("rows = %+v", r.Rows)
	}
	std := params.ColCoefficient
	got := r.Rows[1].Values["Std_"+std]
	if got == nil || math.Abs(*got-0.8*ratioX) > 1e-9 {
		t.Errorf("Std_Coefficient(x) = %v, want %v", got, 0.8*ratioX)
	}
	if v := r.Rows[0].Values["Std_"+std]; v == nil || *v != 1.6 {
		t.Errorf("intercept should be left unscaled, got %v", v)
	}
}

func TestParametersOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "std.json")
	out, _, err := execute(t, "parameters", "testdata/linear.json", "-m", "basic", "--two-sd", "-o", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output should name the written file, got %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	r := decodeReport(t, data)
	if r.Metadata.Method != "basic" || !r.Metadata.TwoSD {
		t.Errorf("metadata = %+v", r.Metadata)
	}
}

func TestParametersRefitTable(t *testing.T) {
	out, logs, err := execute(t, "parameters", "testdata/linear.json")
	if err != nil {
		t.Fatalf("refit: %v\nlogs: %s", err, logs)
	}
	for _, want := range []string{"Std_Coefficient", "CI_low (95%)", "(Intercept)", "refit"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "df_error") {
		t.Errorf("test statistics should be dropped:\n%s", out)
	}
}

func TestParametersPseudoFallback(t *testing.T) {
	out, logs, err := execute(t, "parameters", "testdata/linear.json", "-m", "pseudo")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs, "WARN") {
		t.Errorf("fallback should be logged as a warning, logs: %q", logs)
	}
	if !strings.Contains(out, "basic (requested pseudo)") {
		t.Errorf("output should report the fallback:\n%s", out)
	}
}

func TestParametersErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"parameters", "testdata/none.json"}},
		{"bad extension", []string{"parameters", "testdata/linear.csv"}},
		{"bad method", []string{"parameters", "testdata/linear.json", "-m", "zscore"}},
		{"bad ci", []string{"parameters", "testdata/linear.json", "-m", "basic", "--ci", "2"}},
		{"bad format", []string{"parameters", "testdata/linear.json", "-f", "xml"}},
		{"no args", []string{"parameters"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := execute(t, tt.args...); err == nil {
				t.Errorf("%v should fail", tt.args)
			}
		})
	}
}

func TestPosteriorsTable(t *testing.T) {
	out, _, err := execute(t, "posteriors", "testdata/bayes.toml")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Std_Median", "posthoc", "0.91"} {
		if !strings.Contains(out, want) {
			t.Errorf("posteriors output missing %q:\n%s", want, out)
		}
	}
}

func TestPosteriorsJSON(t *testing.T) {
	out, _, err := execute(t, "posteriors", "testdata/bayes.toml", "-m", "basic", "-f", "json")
	if err != nil {
		t.Fatal(err)
	}
	r := decodeReport(t, []byte(out))
	if len(r.Draws) != 2 || r.Draws[1].Parameter != "x" || len(r.Draws[1].Values) != 5 {
		t.Fatalf("draws = %+v", r.Draws)
	}
	if v := r.Draws[1].Values[0]; v == nil || math.Abs(*v-0.7*ratioX) > 1e-9 {
		t.Errorf("first x draw = %v, want %v", v, 0.7*ratioX)
	}
}

func TestPosteriorsRejectsFrequentistModel(t *testing.T) {
	if _, _, err := execute(t, "posteriors", "testdata/linear.json"); err == nil {
		t.Error("posteriors on a model without draws should fail")
	}
}

func TestInfoCommand(t *testing.T) {
	out, _, err := execute(t, "info", "testdata/linear.json")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"y ~ x + g", "gaussian", "Basic", "Response_Basic", "refit, posthoc, smart, basic"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "pseudo") {
		t.Errorf("pseudo does not apply to a model without groups:\n%s", out)
	}
}

func TestMethodsCommand(t *testing.T) {
	out, _, err := execute(t, "methods")
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range []string{"refit", "posthoc", "smart", "basic", "pseudo"} {
		if !strings.Contains(out, m) {
			t.Errorf("methods output missing %q", m)
		}
	}

	if _, _, err := execute(t, "methods", "--interactive"); err == nil {
		t.Error("--interactive without a model file should fail")
	}
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the program name")
	}
}
