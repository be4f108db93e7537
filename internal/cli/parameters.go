package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MatthieuRouland/effectsize/pkg/io"
	"github.com/MatthieuRouland/effectsize/pkg/standardize"
)

// parametersCommand creates the parameters command, which standardizes the
// coefficients of a model file.
func (c *CLI) parametersCommand() *cobra.Command {
	var (
		std stdFlags
		out outFlags
	)

	cmd := &cobra.Command{
		Use:   "parameters [model-file]",
		Short: "Standardize the coefficients of a fitted model",
		Long: `Standardize the coefficients of a fitted model.

The model file is JSON, YAML or TOML and holds the fit (family, link,
response, terms, coefficients) and the data it was fit on. The design
matrix is rebuilt from the data when omitted.

Methods:
  refit    refit the model on standardized data (linear models only)
  posthoc  rescale by predictor and response SD
  smart    rescale by the SD of the original variables
  basic    rescale by the SD of the design-matrix columns
  pseudo   within/between-group SD (two-level mixed models)`,
		Example: `  effectsize parameters model.json
  effectsize parameters model.yaml --method basic --two-sd
  effectsize parameters logit.toml -m posthoc -e -o std.json`,
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
			return c.runParameters(cmd.Context(), args[0], opts, out)
		},
	}

	std.register(cmd, standardize.DefaultMethod, true)
	out.register(cmd)
	return cmd
}

func (c *CLI) runParameters(ctx context.Context, path string, opts standardize.Options, out outFlags) error {
	prog := newProgress(c.Logger)

	m, err := io.ImportModel(path)
	if err != nil {
		return err
	}
	c.Logger.Debug("Loaded model", "file", path, "family", m.Info().Family, "link", m.Info().Link)

	opts.ObjectName = objectName(path)
	res, err := standardize.Parameters(ctx, m, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Standardized %d parameters", res.Table.Len()))

	return c.writeResult(res, out, func() {
		fmt.Fprintln(c.Out, renderTable(res.Table, out.digits))
	})
}

// writeResult writes res as JSON to a file or stdout, or calls table for
// the table format.
func (c *CLI) writeResult(res *standardize.Result, out outFlags, table func()) error {
	switch {
	case out.output != "":
		if err := io.ExportJSON(res, out.output); err != nil {
			return err
		}
		printSuccess(c.Out, "Wrote standardized %s", res.Metadata.Method)
		printFile(c.Out, out.output)
		return nil
	case out.format == formatJSON:
		return io.WriteJSON(res, c.Out)
	}
	table()
	printMetadata(c.Out, res.Metadata)
	return nil
}

// objectName derives the reported model name from its file name.
func objectName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
