package params

import (
	"slices"

	"github.com/MatthieuRouland/effectsize/pkg/errors"
)

// Draws is a posterior sample matrix: one column per parameter, one row
// per draw. Columns are stored contiguously.
type Draws struct {
	names []string
	cols  [][]float64
	index map[string]int
}

// NewDraws builds a draws matrix from named columns of equal length.
func NewDraws(names []string, columns [][]float64) (*Draws, error) {
	if len(names) != len(columns) {
		return nil, errors.New(errors.ErrCodeInvalidModel,
			"draws: %d names for %d columns", len(names), len(columns))
	}
	if err := errors.ValidateParameterNames(names); err != nil {
		return nil, err
	}
	d := &Draws{
		names: slices.Clone(names),
		cols:  make([][]float64, len(columns)),
		index: make(map[string]int, len(names)),
	}
	for j, c := range columns {
		if len(c) != len(columns[0]) {
			return nil, errors.New(errors.ErrCodeInvalidModel,
				"draws: column %q has %d draws, want %d", names[j], len(c), len(columns[0]))
		}
		d.cols[j] = slices.Clone(c)
		d.index[names[j]] = j
	}
	return d, nil
}

// Parameters returns the column names.
func (d *Draws) Parameters() []string { return slices.Clone(d.names) }

// NumParameters returns the number of columns.
func (d *Draws) NumParameters() int { return len(d.names) }

// NumDraws returns the number of rows.
func (d *Draws) NumDraws() int {
	if len(d.cols) == 0 {
		return 0
	}
	return len(d.cols[0])
}

// Index returns the column index of parameter, or -1.
func (d *Draws) Index(parameter string) int {
	if j, ok := d.index[parameter]; ok {
		return j
	}
	return -1
}

// Column returns a copy of column j.
func (d *Draws) Column(j int) []float64 { return slices.Clone(d.cols[j]) }

// At returns draw i of column j.
func (d *Draws) At(i, j int) float64 { return d.cols[j][i] }

// Scale multiplies every draw of column j by factor, in place.
func (d *Draws) Scale(j int, factor float64) {
	for i := range d.cols[j] {
		d.cols[j][i] *= factor
	}
}

// Clone returns a deep copy.
func (d *Draws) Clone() *Draws {
	c := &Draws{
		names: slices.Clone(d.names),
		cols:  make([][]float64, len(d.cols)),
		index: make(map[string]int, len(d.index)),
	}
	for j, col := range d.cols {
		c.cols[j] = slices.Clone(col)
		c.index[d.names[j]] = j
	}
	return c
}
