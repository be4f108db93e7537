package io

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/MatthieuRouland/effectsize/pkg/errors"
	"github.com/MatthieuRouland/effectsize/pkg/model"
	"github.com/MatthieuRouland/effectsize/pkg/params"
	"github.com/MatthieuRouland/effectsize/pkg/standardize"
)

func TestImportModelJSON(t *testing.T) {
	m, err := ImportModel(filepath.Join("testdata", "linear.json"))
	if err != nil {
		t.Fatal(err)
	}
	info := m.Info()
	if !info.IsLinear || info.IsMixed || info.IsBayesian {
		t.Errorf("Info() = %+v", info)
	}
	if got := m.ModelMatrix().Names(); !slices.Equal(got, []string{"(Intercept)", "x", "gb"}) {
		t.Errorf("rebuilt matrix = %v", got)
	}
	gb, _ := m.ModelMatrix().Column("gb")
	if !slices.Equal(gb, []float64{0, 1, 0, 1, 0, 1}) {
		t.Errorf("gb = %v", gb)
	}

	tbl, err := m.Parameters(0.95, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := tbl.Value(1, params.ColCoefficient); got != 0.8 {
		t.Errorf("x = %v", got)
	}
	if got := tbl.Value(1, params.ColDF); got != 3 {
		t.Errorf("df = %v, want 3", got)
	}
}

func TestImportModelYAMLMixed(t *testing.T) {
	m, err := ImportModel(filepath.Join("testdata", "mixed.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if got := model.RandomGroups(m); !slices.Equal(got, []string{"site"}) {
		t.Errorf("RandomGroups() = %v", got)
	}
	if !standardize.CanPseudo(m) {
		t.Error("two-level model should allow pseudo")
	}
}

func TestImportModelTOMLBayesian(t *testing.T) {
	m, err := ImportModel(filepath.Join("testdata", "bayes.toml"))
	if err != nil {
		t.Fatal(err)
	}
	info := m.Info()
	if info.Family != model.FamilyBinomial || info.Link != model.LinkLogit || !info.IsBayesian {
		t.Errorf("Info() = %+v", info)
	}
	b, ok := m.(model.Bayesian)
	if !ok {
		t.Fatal("model should be Bayesian")
	}
	d, err := b.Posterior()
	if err != nil {
		t.Fatal(err)
	}
	if d.NumDraws() != 4 || d.At(1, 1) != 0.42 {
		t.Errorf("posterior = %d draws, x[1] = %v", d.NumDraws(), d.At(1, 1))
	}
}

func TestReadModelErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		code   errors.Code
	}{
		{"malformed json", FormatJSON, `{"family":`, errors.ErrCodeInvalidModel},
		{"unknown key", FormatJSON, `{"response":"y","colour":1}`, errors.ErrCodeInvalidModel},
		{"unknown family", FormatJSON, `{"family":"weibull","response":"y"}`, errors.ErrCodeInvalidModel},
		{"unknown link", FormatYAML, "link: cloglog\nresponse: y\n", errors.ErrCodeInvalidModel},
		{"unknown toml key", FormatTOML, "response = \"y\"\ncolour = 1\n", errors.ErrCodeInvalidModel},
		{"empty variable", FormatJSON, `{"response":"y","data":[{"name":"y"}]}`, errors.ErrCodeInvalidModel},
		{"missing response", FormatJSON,
			`{"response":"z","data":[{"name":"y","numeric":[1,2]}],"coefficients":[{"parameter":"(Intercept)","estimate":1,"se":1}]}`,
			errors.ErrCodeInvalidModel},
		{"unknown format", Format("xml"), `<model/>`, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadModel(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestImportModelPathErrors(t *testing.T) {
	if _, err := ImportModel("model.csv"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("csv error = %v", err)
	}
	missing := filepath.Join(t.TempDir(), "missing.json")
	if _, err := ImportModel(missing); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"m.json": FormatJSON,
		"m.YAML": FormatYAML,
		"m.yml":  FormatYAML,
		"m.toml": FormatTOML,
	}
	for path, want := range tests {
		if got, err := FormatFromPath(path); err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v", path, got, err)
		}
	}
}

func decodeReport(t *testing.T, res *standardize.Result) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteJSON(res, &buf); err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	return doc
}

func TestWriteJSONParameters(t *testing.T) {
	m, err := ImportModel(filepath.Join("testdata", "linear.json"))
	if err != nil {
		t.Fatal(err)
	}
	res, err := standardize.Parameters(context.Background(), m, standardize.Options{
		Method:     standardize.MethodSmart,
		ObjectName: "linear",
	})
	if err != nil {
		t.Fatal(err)
	}
	doc := decodeReport(t, res)

	id, _ := doc["report_id"].(string)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("report_id %q is not a UUID: %v", id, err)
	}
	md := doc["metadata"].(map[string]any)
	if md["std_method"] != "smart" || md["object_name"] != "linear" || md["include_response"] != true {
		t.Errorf("metadata = %v", md)
	}
	if se := md["standard_error"].([]any); len(se) != 3 {
		t.Errorf("standard_error = %v", se)
	}

	rows := doc["rows"].([]any)
	if len(rows) != 3 {
		t.Fatalf("rows = %v", rows)
	}
	first := rows[0].(map[string]any)
	if first["parameter"] != "(Intercept)" {
		t.Errorf("first row = %v", first)
	}
	if sf := doc["scale_factors"].([]any); len(sf) != 2 {
		t.Errorf("scale_factors = %v", sf)
	}
}

func TestWriteJSONNullsAndDraws(t *testing.T) {
	d, err := params.NewDraws([]string{"x"}, [][]float64{{1, math.NaN()}})
	if err != nil {
		t.Fatal(err)
	}
	res := &standardize.Result{
		Draws:    d,
		Metadata: standardize.Metadata{Method: standardize.MethodBasic, StandardError: []float64{math.Inf(1)}},
		Warnings: []string{"fallback"},
	}
	doc := decodeReport(t, res)

	draws := doc["draws"].([]any)[0].(map[string]any)
	vals := draws["values"].([]any)
	if vals[0] != 1.0 || vals[1] != nil {
		t.Errorf("values = %v, want [1 null]", vals)
	}
	if se := doc["metadata"].(map[string]any)["standard_error"].([]any); se[0] != nil {
		t.Errorf("standard_error = %v, want [null]", se)
	}
	if _, ok := doc["rows"]; ok {
		t.Error("posterior report should have no rows")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	res := &standardize.Result{Metadata: standardize.Metadata{Method: standardize.MethodBasic}}
	if err := ExportJSON(res, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"std_method": "basic"`)) {
		t.Errorf("report = %s", data)
	}
}
