package io

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/google/uuid"

	"github.com/MatthieuRouland/effectsize/pkg/params"
	"github.com/MatthieuRouland/effectsize/pkg/standardize"
)

type report struct {
	ReportID     string        `json:"report_id"`
	Metadata     metadata      `json:"metadata"`
	Columns      []string      `json:"columns,omitempty"`
	Rows         []row         `json:"rows,omitempty"`
	Draws        []draws       `json:"draws,omitempty"`
	ScaleFactors []scaleFactor `json:"scale_factors,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
}

type metadata struct {
	Method          string     `json:"std_method"`
	Requested       string     `json:"requested_method"`
	Robust          bool       `json:"robust"`
	TwoSD           bool       `json:"two_sd"`
	Exponentiate    bool       `json:"exponentiate"`
	IncludeResponse bool       `json:"include_response"`
	ObjectName      string     `json:"object_name,omitempty"`
	StandardError   []*float64 `json:"standard_error,omitempty"`
}

type row struct {
	Parameter string              `json:"parameter"`
	Component string              `json:"component,omitempty"`
	Effects   string              `json:"effects,omitempty"`
	Group     string              `json:"group,omitempty"`
	Response  string              `json:"response,omitempty"`
	Values    map[string]*float64 `json:"values"`
}

type draws struct {
	Parameter string     `json:"parameter"`
	Values    []*float64 `json:"values"`
}

type scaleFactor struct {
	Parameter      string   `json:"parameter"`
	Type           string   `json:"type,omitempty"`
	Variable       string   `json:"variable,omitempty"`
	Basic          *float64 `json:"deviation_basic"`
	Smart          *float64 `json:"deviation_smart"`
	Pseudo         *float64 `json:"deviation_pseudo"`
	ResponseBasic  *float64 `json:"deviation_response_basic"`
	ResponseSmart  *float64 `json:"deviation_response_smart"`
	ResponsePseudo *float64 `json:"deviation_response_pseudo"`
}

// WriteJSON encodes a standardization result as JSON and writes it to w.
//
// The document carries a fresh random report_id, the result metadata
// (std_method, robust, two_sd, object_name, standard_error), the table
// columns and rows or the posterior draws, the scale factors used and any
// fallback warnings. Missing and non-finite values are written as null.
func WriteJSON(res *standardize.Result, w io.Writer) error {
	out := report{
		ReportID: uuid.NewString(),
		Metadata: metadata{
			Method:          string(res.Metadata.Method),
			Requested:       string(res.Metadata.Requested),
			Robust:          res.Metadata.Robust,
			TwoSD:           res.Metadata.TwoSD,
			Exponentiate:    res.Metadata.Exponentiate,
			IncludeResponse: !res.Metadata.ExcludeResponse,
			ObjectName:      res.Metadata.ObjectName,
			StandardError:   nullable(res.Metadata.StandardError),
		},
		Warnings: res.Warnings,
	}

	if tbl := res.Table; tbl != nil {
		out.Columns = tbl.Columns()
		for _, r := range tbl.Rows() {
			vals := make(map[string]*float64, len(out.Columns))
			for _, col := range out.Columns {
				vals[col] = value(r.Value(col))
			}
			out.Rows = append(out.Rows, row{
				Parameter: r.Parameter,
				Component: r.Component,
				Effects:   r.Effects,
				Group:     r.Group,
				Response:  r.Response,
				Values:    vals,
			})
		}
	}
	if d := res.Draws; d != nil {
		for j, p := range d.Parameters() {
			out.Draws = append(out.Draws, draws{Parameter: p, Values: nullable(d.Column(j))})
		}
	}
	if sf := res.ScaleFactors; sf != nil {
		for _, f := range sf.Rows() {
			out.ScaleFactors = append(out.ScaleFactors, scaleFactor{
				Parameter:      f.Parameter,
				Type:           f.Type,
				Variable:       f.Variable,
				Basic:          value(f.Get(params.DeviationBasic)),
				Smart:          value(f.Get(params.DeviationSmart)),
				Pseudo:         value(f.Get(params.DeviationPseudo)),
				ResponseBasic:  value(f.Get(params.DeviationResponseBasic)),
				ResponseSmart:  value(f.Get(params.DeviationResponseSmart)),
				ResponsePseudo: value(f.Get(params.DeviationResponsePseudo)),
			})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a standardization result to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(res *standardize.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(res, f)
}

func value(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func nullable(vs []float64) []*float64 {
	if vs == nil {
		return nil
	}
	out := make([]*float64, len(vs))
	for i, v := range vs {
		out[i] = value(v)
	}
	return out
}
