package model

import (
	"slices"

	"github.com/MatthieuRouland/effectsize/pkg/errors"
)

// Variable is one data column: numeric values or factor levels.
type Variable struct {
	Name    string
	Numeric []float64 // nil for factors
	Levels  []string  // one level per observation; nil for numeric variables
}

// IsFactor reports whether v holds factor levels.
func (v Variable) IsFactor() bool { return v.Levels != nil }

// Len returns the number of observations.
func (v Variable) Len() int {
	if v.IsFactor() {
		return len(v.Levels)
	}
	return len(v.Numeric)
}

func (v Variable) clone() Variable {
	return Variable{Name: v.Name, Numeric: slices.Clone(v.Numeric), Levels: slices.Clone(v.Levels)}
}

// Frame is a set of equal-length named variables.
type Frame struct {
	vars  []Variable
	index map[string]int
}

// NewFrame builds a frame. Names must be unique and lengths equal.
func NewFrame(vars ...Variable) (*Frame, error) {
	f := &Frame{index: make(map[string]int, len(vars))}
	for _, v := range vars {
		if v.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidModel, "frame: variable without a name")
		}
		if v.Numeric != nil && v.Levels != nil {
			return nil, errors.New(errors.ErrCodeInvalidModel, "frame: variable %q is both numeric and factor", v.Name)
		}
		if _, dup := f.index[v.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidModel, "frame: duplicate variable %q", v.Name)
		}
		if len(f.vars) > 0 && v.Len() != f.vars[0].Len() {
			return nil, errors.New(errors.ErrCodeInvalidModel,
				"frame: variable %q has %d rows, want %d", v.Name, v.Len(), f.vars[0].Len())
		}
		f.index[v.Name] = len(f.vars)
		f.vars = append(f.vars, v.clone())
	}
	return f, nil
}

// Names returns the variable names in order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.vars))
	for i, v := range f.vars {
		out[i] = v.Name
	}
	return out
}

// Rows returns the number of observations.
func (f *Frame) Rows() int {
	if len(f.vars) == 0 {
		return 0
	}
	return f.vars[0].Len()
}

// Var returns a copy of the named variable.
func (f *Frame) Var(name string) (Variable, bool) {
	i, ok := f.index[name]
	if !ok {
		return Variable{}, false
	}
	return f.vars[i].clone(), true
}

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	c := &Frame{vars: make([]Variable, len(f.vars)), index: make(map[string]int, len(f.index))}
	for i, v := range f.vars {
		c.vars[i] = v.clone()
		c.index[v.Name] = i
	}
	return c
}

// Replace swaps the variable of the same name for v. The length must match.
func (f *Frame) Replace(v Variable) error {
	i, ok := f.index[v.Name]
	if !ok {
		return errors.New(errors.ErrCodeInvalidModel, "frame: unknown variable %q", v.Name)
	}
	if v.Len() != f.Rows() {
		return errors.New(errors.ErrCodeInvalidModel, "frame: variable %q has %d rows, want %d", v.Name, v.Len(), f.Rows())
	}
	f.vars[i] = v.clone()
	return nil
}

// Matrix is a design matrix stored by named columns.
type Matrix struct {
	names []string
	cols  [][]float64
	index map[string]int
}

// NewMatrix builds a matrix from named columns of equal length.
func NewMatrix(names []string, cols [][]float64) (*Matrix, error) {
	if len(names) != len(cols) {
		return nil, errors.New(errors.ErrCodeInvalidModel, "matrix: %d names for %d columns", len(names), len(cols))
	}
	if err := errors.ValidateParameterNames(names); err != nil {
		return nil, err
	}
	m := &Matrix{names: slices.Clone(names), cols: make([][]float64, len(cols)), index: make(map[string]int, len(names))}
	for j, c := range cols {
		if len(c) != len(cols[0]) {
			return nil, errors.New(errors.ErrCodeInvalidModel, "matrix: column %q has %d rows, want %d", names[j], len(c), len(cols[0]))
		}
		m.cols[j] = slices.Clone(c)
		m.index[names[j]] = j
	}
	return m, nil
}

// Names returns the column names.
func (m *Matrix) Names() []string { return slices.Clone(m.names) }

// Column returns a copy of the named column.
func (m *Matrix) Column(name string) ([]float64, bool) {
	j, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(m.cols[j]), true
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	if len(m.cols) == 0 {
		return 0
	}
	return len(m.cols[0])
}
