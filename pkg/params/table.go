package params

import (
	"math"
	"slices"

	"github.com/MatthieuRouland/effectsize/pkg/errors"
)

// Well-known numeric column names of a parameter table.
const (
	ColCoefficient = "Coefficient"
	ColMedian      = "Median"
	ColMean        = "Mean"
	ColMAP         = "MAP"
	ColSE          = "SE"
	ColCI          = "CI"
	ColCILow       = "CI_low"
	ColCIHigh      = "CI_high"
	ColT           = "t"
	ColZ           = "z"
	ColDF          = "df_error"
	ColP           = "p"
)

// Row is one parameter of a fitted model.
type Row struct {
	Parameter string // identity, unique within a table
	Component string // e.g. "conditional", "zero_inflated"
	Effects   string // "fixed" or "random"
	Group     string // random-effect grouping factor
	Response  string // response name for multivariate models

	Values map[string]float64
}

// Value returns the value of col, or NaN when the row has none.
func (r Row) Value(col string) float64 {
	if v, ok := r.Values[col]; ok {
		return v
	}
	return math.NaN()
}

func (r Row) clone() Row {
	c := r
	c.Values = make(map[string]float64, len(r.Values))
	for k, v := range r.Values {
		c.Values[k] = v
	}
	return c
}

// Table is an ordered parameter table. Row order is the model's order and
// every operation preserves it.
type Table struct {
	columns []string
	rows    []Row
	index   map[string]int
}

// New creates an empty table with the given numeric columns.
func New(columns ...string) *Table {
	return &Table{
		columns: slices.Clone(columns),
		index:   make(map[string]int),
	}
}

// Append adds a row. The parameter must be unique and every value must
// belong to a declared column.
func (t *Table) Append(r Row) error {
	if err := errors.ValidateParameterName(r.Parameter); err != nil {
		return err
	}
	if _, dup := t.index[r.Parameter]; dup {
		return errors.New(errors.ErrCodeInvalidModel, "duplicate parameter %q", r.Parameter)
	}
	for col := range r.Values {
		if !t.Has(col) {
			return errors.New(errors.ErrCodeInvalidModel, "parameter %q: unknown column %q", r.Parameter, col)
		}
	}
	t.index[r.Parameter] = len(t.rows)
	t.rows = append(t.rows, r.clone())
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the numeric column names in order.
func (t *Table) Columns() []string { return slices.Clone(t.columns) }

// Has reports whether col is a column of t.
func (t *Table) Has(col string) bool { return slices.Contains(t.columns, col) }

// Parameters returns the parameter names in row order.
func (t *Table) Parameters() []string {
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Parameter
	}
	return out
}

// Index returns the row index of parameter, or -1.
func (t *Table) Index(parameter string) int {
	if i, ok := t.index[parameter]; ok {
		return i
	}
	return -1
}

// Row returns a copy of row i.
func (t *Table) Row(i int) Row { return t.rows[i].clone() }

// Rows returns copies of all rows.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.clone()
	}
	return out
}

// Value returns row i's value in col, or NaN.
func (t *Table) Value(i int, col string) float64 { return t.rows[i].Value(col) }

// Set stores v in row i, column col. It panics if col is not a column of t.
func (t *Table) Set(i int, col string, v float64) {
	if !t.Has(col) {
		panic("params: set on unknown column " + col)
	}
	t.rows[i].Values[col] = v
}

// Column returns the values of col in row order. Missing cells are NaN.
func (t *Table) Column(col string) []float64 {
	out := make([]float64, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Value(col)
	}
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := New(t.columns...)
	c.rows = make([]Row, len(t.rows))
	for i, r := range t.rows {
		c.rows[i] = r.clone()
		c.index[r.Parameter] = i
	}
	return c
}

// Rename renames column old to name. It reports false when old is absent
// or name already exists.
func (t *Table) Rename(old, name string) bool {
	i := slices.Index(t.columns, old)
	if i < 0 || t.Has(name) {
		return false
	}
	t.columns[i] = name
	for _, r := range t.rows {
		if v, ok := r.Values[old]; ok {
			delete(r.Values, old)
			r.Values[name] = v
		}
	}
	return true
}

// Drop removes col and returns its detached values.
func (t *Table) Drop(col string) ([]float64, bool) {
	i := slices.Index(t.columns, col)
	if i < 0 {
		return nil, false
	}
	vals := t.Column(col)
	t.columns = slices.Delete(t.columns, i, i+1)
	for _, r := range t.rows {
		delete(r.Values, col)
	}
	return vals, true
}
