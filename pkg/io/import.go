package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/MatthieuRouland/effectsize/pkg/errors"
	"github.com/MatthieuRouland/effectsize/pkg/model"
	"github.com/MatthieuRouland/effectsize/pkg/params"
	"github.com/MatthieuRouland/effectsize/pkg/refit"
)

// Format is a model file encoding.
type Format string

// Supported model file formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var formatByExt = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
}

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateModelPath(path); err != nil {
		return "", err
	}
	return formatByExt[strings.ToLower(filepath.Ext(path))], nil
}

type modelFile struct {
	Family       string        `json:"family" yaml:"family" toml:"family"`
	Link         string        `json:"link" yaml:"link" toml:"link"`
	Response     string        `json:"response" yaml:"response" toml:"response"`
	Terms        []string      `json:"terms,omitempty" yaml:"terms,omitempty" toml:"terms,omitempty"`
	Groups       []string      `json:"groups,omitempty" yaml:"groups,omitempty" toml:"groups,omitempty"`
	DF           *float64      `json:"df,omitempty" yaml:"df,omitempty" toml:"df,omitempty"`
	Data         []variable    `json:"data" yaml:"data" toml:"data"`
	Matrix       []column      `json:"matrix,omitempty" yaml:"matrix,omitempty" toml:"matrix,omitempty"`
	Coefficients []coefficient `json:"coefficients" yaml:"coefficients" toml:"coefficients"`
	Posterior    []column      `json:"posterior,omitempty" yaml:"posterior,omitempty" toml:"posterior,omitempty"`
}

type variable struct {
	Name    string    `json:"name" yaml:"name" toml:"name"`
	Numeric []float64 `json:"numeric,omitempty" yaml:"numeric,omitempty" toml:"numeric,omitempty"`
	Levels  []string  `json:"levels,omitempty" yaml:"levels,omitempty" toml:"levels,omitempty"`
}

type column struct {
	Name   string    `json:"name" yaml:"name" toml:"name"`
	Values []float64 `json:"values" yaml:"values" toml:"values"`
}

type coefficient struct {
	Parameter string  `json:"parameter" yaml:"parameter" toml:"parameter"`
	Estimate  float64 `json:"estimate" yaml:"estimate" toml:"estimate"`
	SE        float64 `json:"se" yaml:"se" toml:"se"`
}

var families = map[string]model.Family{
	"":                  model.FamilyGaussian,
	"gaussian":          model.FamilyGaussian,
	"binomial":          model.FamilyBinomial,
	"poisson":           model.FamilyPoisson,
	"negative_binomial": model.FamilyNegativeBinomial,
	"gamma":             model.FamilyGamma,
}

var links = map[string]model.Link{
	"identity": model.LinkIdentity,
	"logit":    model.LinkLogit,
	"probit":   model.LinkProbit,
	"log":      model.LinkLog,
	"inverse":  model.LinkInverse,
}

// canonicalLink is used when a file names a family but no link.
var canonicalLink = map[model.Family]model.Link{
	model.FamilyGaussian:         model.LinkIdentity,
	model.FamilyBinomial:         model.LinkLogit,
	model.FamilyPoisson:          model.LinkLog,
	model.FamilyNegativeBinomial: model.LinkLog,
	model.FamilyGamma:            model.LinkInverse,
}

// ReadModel decodes a model description in the given format from r.
//
// The description carries the fitted coefficients, the original data and,
// optionally, the design matrix, the random grouping factors and posterior
// draws. When the design matrix is omitted it is rebuilt from the
// coefficient names. Groups make the model mixed; posterior draws make it
// Bayesian.
//
// ReadModel does not close r.
func ReadModel(r io.Reader, format Format) (model.Model, error) {
	var mf modelFile
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&mf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode json")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&mf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode yaml")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&mf)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidModel, "decode toml: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown model format %q", format)
	}
	return mf.build()
}

// ImportModel reads the model file at path, choosing the decoder from the
// file extension.
func ImportModel(path string) (model.Model, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "model file %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	m, err := ReadModel(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (mf modelFile) build() (model.Model, error) {
	family, ok := families[strings.ToLower(mf.Family)]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidModel, "unknown family %q", mf.Family)
	}
	link := canonicalLink[family]
	if mf.Link != "" {
		if link, ok = links[strings.ToLower(mf.Link)]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidModel, "unknown link %q", mf.Link)
		}
	}

	vars := make([]model.Variable, len(mf.Data))
	for i, v := range mf.Data {
		vars[i] = model.Variable{Name: v.Name, Numeric: v.Numeric, Levels: v.Levels}
		if v.Numeric == nil && v.Levels == nil {
			return nil, errors.New(errors.ErrCodeInvalidModel, "data %q has no values", v.Name)
		}
	}
	frame, err := model.NewFrame(vars...)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(mf.Coefficients))
	est := make([]model.Estimate, len(mf.Coefficients))
	for i, c := range mf.Coefficients {
		names[i] = c.Parameter
		est[i] = model.Estimate{Parameter: c.Parameter, Value: c.Estimate, SE: c.SE}
	}

	var mm *model.Matrix
	if len(mf.Matrix) > 0 {
		mm, err = matrix(mf.Matrix)
	} else {
		mm, err = refit.DesignMatrix(names, frame)
	}
	if err != nil {
		return nil, fmt.Errorf("matrix: %w", err)
	}

	fit := model.Fit{
		Response:     mf.Response,
		Terms:        mf.Terms,
		Data:         frame,
		Matrix:       mm,
		Coefficients: est,
	}
	if mf.DF != nil {
		fit.DF = *mf.DF
	}
	var m model.Model
	if m, err = model.NewGLM(fit, family, link); err != nil {
		return nil, err
	}
	if len(mf.Groups) > 0 {
		if m, err = model.NewMixed(m, mf.Groups...); err != nil {
			return nil, err
		}
	}
	if len(mf.Posterior) > 0 {
		cols := make([][]float64, len(mf.Posterior))
		pnames := make([]string, len(mf.Posterior))
		for i, c := range mf.Posterior {
			pnames[i], cols[i] = c.Name, c.Values
		}
		draws, err := params.NewDraws(pnames, cols)
		if err != nil {
			return nil, fmt.Errorf("posterior: %w", err)
		}
		if m, err = model.NewBayesian(m, draws); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func matrix(cols []column) (*model.Matrix, error) {
	names := make([]string, len(cols))
	values := make([][]float64, len(cols))
	for i, c := range cols {
		names[i], values[i] = c.Name, c.Values
	}
	return model.NewMatrix(names, values)
}
