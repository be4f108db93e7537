package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"

	"github.com/MatthieuRouland/effectsize/pkg/io"
	"github.com/MatthieuRouland/effectsize/pkg/params"
	"github.com/MatthieuRouland/effectsize/pkg/standardize"
)

// posteriorsCommand creates the posteriors command, which standardizes the
// posterior draws of a Bayesian model file.
func (c *CLI) posteriorsCommand() *cobra.Command {
	var (
		std stdFlags
		out outFlags
	)

	cmd := &cobra.Command{
		Use:   "posteriors [model-file]",
		Short: "Standardize the posterior draws of a Bayesian model",
		Long: `Standardize the posterior draws of a Bayesian model.

Every draw of a parameter is multiplied by the same deviation ratio. The
table output summarizes each parameter by the median of its standardized
draws and an equal-tailed interval at --ci; JSON output carries every draw.

Refit needs a Bayesian fitter, which this command does not provide, so the
default method is posthoc.`,
		Example: `  effectsize posteriors bayes.toml
  effectsize posteriors bayes.toml --method basic --ci 0.89 -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := out.resolve(cmd, cfg.Output); err != nil {
				return err
			}
			opts, err := c.standardizeOptions(cmd, &std, cfg)
			if err != nil {
				return err
			}
			return c.runPosteriors(cmd.Context(), args[0], opts, out)
		},
	}

	std.register(cmd, standardize.MethodPosthoc, false)
	out.register(cmd)
	return cmd
}

func (c *CLI) runPosteriors(ctx context.Context, path string, opts standardize.Options, out outFlags) error {
	prog := newProgress(c.Logger)

	m, err := io.ImportModel(path)
	if err != nil {
		return err
	}

	ci := opts.CI
	opts.ObjectName = objectName(path)
	res, err := standardize.Posteriors(ctx, m, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Standardized %d draws of %d parameters",
		res.Draws.NumDraws(), res.Draws.NumParameters()))

	return c.writeResult(res, out, func() {
		fmt.Fprintln(c.Out, renderTable(summarizeDraws(res.Draws, ci), out.digits))
	})
}

// summarizeDraws returns one row per parameter with the median of its draws
// and an equal-tailed interval at level ci.
func summarizeDraws(d *params.Draws, ci float64) *params.Table {
	if ci <= 0 || ci >= 1 {
		ci = standardize.DefaultCI
	}
	median := standardize.StdPrefix + params.ColMedian
	tbl := params.New(median, params.ColCI, params.ColCILow, params.ColCIHigh)

	for j, p := range d.Parameters() {
		draws := finiteDraws(d.Column(j))
		vals := map[string]float64{
			median:           math.NaN(),
			params.ColCI:     ci,
			params.ColCILow:  math.NaN(),
			params.ColCIHigh: math.NaN(),
		}
		if len(draws) > 0 {
			if v, err := stats.Median(draws); err == nil {
				vals[median] = v
			}
			if v, err := stats.Percentile(draws, 100*(1-ci)/2); err == nil {
				vals[params.ColCILow] = v
			}
			if v, err := stats.Percentile(draws, 100*(1+ci)/2); err == nil {
				vals[params.ColCIHigh] = v
			}
		}
		// Parameter names come from an already validated draws matrix.
		_ = tbl.Append(params.Row{Parameter: p, Values: vals})
	}
	return tbl
}

func finiteDraws(xs []float64) stats.Float64Data {
	out := make(stats.Float64Data, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}
