package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/MatthieuRouland/effectsize/pkg/io"
	"github.com/MatthieuRouland/effectsize/pkg/model"
	"github.com/MatthieuRouland/effectsize/pkg/standardize"
)

var methodDescriptions = map[standardize.Method]string{
	standardize.MethodRefit:   "refit on standardized data",
	standardize.MethodPosthoc: "rescale by predictor and response SD",
	standardize.MethodSmart:   "rescale by the SD of the original variables",
	standardize.MethodBasic:   "rescale by the SD of the design-matrix columns",
	standardize.MethodPseudo:  "within/between-group SD of a two-level model",
}

// methodsCommand creates the methods command. Given a model file it marks
// the methods that apply to it; with --interactive it lets the user pick
// one and standardizes the model with it.
func (c *CLI) methodsCommand() *cobra.Command {
	var (
		interactive bool
		digits      int
	)

	cmd := &cobra.Command{
		Use:   "methods [model-file]",
		Short: "List the standardization methods",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if interactive {
					return fmt.Errorf("--interactive needs a model file")
				}
				fmt.Fprintln(c.Out, renderMethods(methodItems(nil)))
				return nil
			}

			m, err := io.ImportModel(args[0])
			if err != nil {
				return err
			}
			items := methodItems(m)
			if !interactive {
				fmt.Fprintln(c.Out, renderMethods(items))
				return nil
			}

			final, err := tea.NewProgram(NewMethodListModel(items)).Run()
			if err != nil {
				return fmt.Errorf("method picker: %w", err)
			}
			picked := final.(MethodListModel).Selected
			if picked == nil {
				printWarning(c.Out, "No method selected")
				return nil
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags := stdFlags{method: string(*picked), ci: standardize.DefaultCI}
			opts, err := c.standardizeOptions(cmd, &flags, cfg)
			if err != nil {
				return err
			}
			opts.Method = *picked
			return c.runParameters(cmd.Context(), args[0], opts, outFlags{format: formatTable, digits: digits})
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a method and standardize the model with it")
	cmd.Flags().IntVar(&digits, "digits", defaultDigits, "decimal places in table output")
	return cmd
}

// methodItems lists every method. With a nil model every method is usable.
func methodItems(m model.Model) []methodItem {
	var parameters []string
	if m != nil && m.ModelMatrix() != nil {
		parameters = m.ModelMatrix().Names()
	}
	items := make([]methodItem, 0, len(standardize.Methods()))
	for _, method := range standardize.Methods() {
		items = append(items, methodItem{
			Method:      method,
			Description: methodDescriptions[method],
			Usable:      m == nil || usable(method, m, parameters),
		})
	}
	return items
}

// usable reports whether method can be applied to m from the command line.
// Refit goes through the least-squares fitter, which only handles plain
// linear models.
func usable(method standardize.Method, m model.Model, parameters []string) bool {
	if method == standardize.MethodRefit {
		info := m.Info()
		return info.IsLinear && !info.IsMixed && !info.IsBayesian
	}
	return standardize.CanUse(method, m, parameters)
}

func renderMethods(items []methodItem) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		status := StyleSuccess.Render(iconSuccess)
		if !it.Usable {
			status = StyleWarning.Render(iconWarning)
		}
		rows = append(rows, []string{string(it.Method), it.Description, status})
	}
	return renderGrid([]string{"Method", "Description", ""}, rows)
}
