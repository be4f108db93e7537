package deviation

import (
	"math"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/MatthieuRouland/effectsize/pkg/model"
	"github.com/MatthieuRouland/effectsize/pkg/params"
)

// grouping assigns each observation to a group.
type grouping struct {
	of    []int // group index per observation
	sizes []int
}

func newGrouping(v model.Variable) grouping {
	keys := v.Levels
	if !v.IsFactor() {
		keys = make([]string, len(v.Numeric))
		for i, x := range v.Numeric {
			keys[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
	}
	g := grouping{of: make([]int, len(keys))}
	seen := make(map[string]int)
	for i, k := range keys {
		j, ok := seen[k]
		if !ok {
			j = len(g.sizes)
			seen[k] = j
			g.sizes = append(g.sizes, 0)
		}
		g.of[i] = j
		g.sizes[j]++
	}
	return g
}

func (g grouping) k() int { return len(g.sizes) }

// means returns the per-group means of xs.
func (g grouping) means(xs []float64) []float64 {
	sums := make([]float64, g.k())
	for i, x := range xs {
		sums[g.of[i]] += x
	}
	for j := range sums {
		sums[j] /= float64(g.sizes[j])
	}
	return sums
}

// within reports whether xs varies inside at least one group.
func (g grouping) within(xs []float64) bool {
	first := make([]float64, g.k())
	set := make([]bool, g.k())
	for i, x := range xs {
		j := g.of[i]
		if !set[j] {
			first[j], set[j] = x, true
			continue
		}
		if x != first[j] {
			return true
		}
	}
	return false
}

// centred returns xs minus its group means.
func (g grouping) centred(xs []float64) []float64 {
	mu := g.means(xs)
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x - mu[g.of[i]]
	}
	return out
}

// expanded returns the group mean of every observation.
func (g grouping) expanded(xs []float64) []float64 {
	mu := g.means(xs)
	out := make([]float64, len(xs))
	for i := range xs {
		out[i] = mu[g.of[i]]
	}
	return out
}

// variance holds the random-intercept decomposition of the response.
type variance struct {
	within  float64 // residual SD
	between float64 // random-intercept SD
}

// decompose estimates the one-way random-intercept variance components of
// ys by the ANOVA method. Negative between-group estimates are truncated
// at zero.
func (g grouping) decompose(ys []float64) variance {
	n, k := float64(len(ys)), float64(g.k())
	if g.k() < 2 || len(ys) <= g.k() {
		return variance{within: math.NaN(), between: math.NaN()}
	}
	grand, _ := stats.Mean(stats.Float64Data(ys))
	mu := g.means(ys)

	var ssw, ssb, sumSq float64
	for i, y := range ys {
		d := y - mu[g.of[i]]
		ssw += d * d
	}
	for j, size := range g.sizes {
		d := mu[j] - grand
		ssb += float64(size) * d * d
		sumSq += float64(size * size)
	}
	msw := ssw / (n - k)
	msb := ssb / (k - 1)
	n0 := (n - sumSq/n) / (k - 1)

	return variance{
		within:  math.Sqrt(msw),
		between: math.Sqrt(math.Max(0, (msb-msw)/n0)),
	}
}

// fillPseudo sets the pseudo columns of rows. Models that are not
// two-level, or whose data cannot be grouped, keep NaN.
func fillPseudo(m model.Model, rows []params.ScaleFactor, factor float64) {
	groups := model.RandomGroups(m)
	if len(groups) != 1 {
		return
	}
	data, mm := m.Data(), m.ModelMatrix()
	gv, ok := data.Var(groups[0])
	if !ok || gv.Len() != mm.Rows() {
		return
	}
	g := newGrouping(gv)

	resp := variance{within: 1, between: 1}
	if m.Info().IsLinear {
		y, ok := data.Var(m.Response())
		if !ok || y.IsFactor() {
			return
		}
		resp = g.decompose(y.Numeric)
	}

	for i := range rows {
		x, ok := mm.Column(rows[i].Parameter)
		if !ok {
			continue
		}
		if g.within(x) {
			rows[i].Pseudo = factor * sampleSD(g.centred(x))
			rows[i].ResponsePseudo = resp.within
		} else {
			rows[i].Pseudo = factor * sampleSD(g.expanded(x))
			rows[i].ResponsePseudo = resp.between
		}
	}
}

func sampleSD(xs []float64) float64 {
	return Compute(xs, false).Scale
}
