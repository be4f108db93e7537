package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MatthieuRouland/effectsize/pkg/deviation"
	"github.com/MatthieuRouland/effectsize/pkg/io"
	"github.com/MatthieuRouland/effectsize/pkg/model"
	"github.com/MatthieuRouland/effectsize/pkg/standardize"
)

// infoCommand creates the info command, which shows a model's deviations
// and the methods that apply to it.
func (c *CLI) infoCommand() *cobra.Command {
	var (
		robust bool
		twoSD  bool
		digits int
	)

	cmd := &cobra.Command{
		Use:   "info [model-file]",
		Short: "Show the deviations used to standardize a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := io.ImportModel(args[0])
			if err != nil {
				return err
			}
			sf, err := deviation.NewCalculator().Compute(m, deviation.Options{
				Robust:        robust,
				TwoSD:         twoSD,
				IncludePseudo: standardize.CanPseudo(m),
			})
			if err != nil {
				return err
			}
			c.printModelInfo(m)
			fmt.Fprintln(c.Out, renderScaleFactors(sf, digits))
			return nil
		},
	}

	cmd.Flags().BoolVar(&robust, "robust", false, "use median and MAD instead of mean and SD")
	cmd.Flags().BoolVar(&twoSD, "two-sd", false, "double every predictor deviation")
	cmd.Flags().IntVar(&digits, "digits", defaultDigits, "decimal places")
	return cmd
}

func (c *CLI) printModelInfo(m model.Model) {
	info := m.Info()
	formula := m.Response()
	if frame := m.ModelFrame(); len(frame) > 1 {
		formula = fmt.Sprintf("%s ~ %s", frame[0], strings.Join(frame[1:], " + "))
	}
	fmt.Fprintln(c.Out, StyleTitle.Render(formula))
	printKeyValue(c.Out, "Family", fmt.Sprintf("%s (%s)", info.Family, info.Link))
	if groups := model.RandomGroups(m); len(groups) > 0 {
		printKeyValue(c.Out, "Groups", strings.Join(groups, ", "))
	}
	if info.IsBayesian {
		printKeyValue(c.Out, "Posterior", "yes")
	}

	var names []string
	for _, it := range methodItems(m) {
		if it.Usable {
			names = append(names, string(it.Method))
		}
	}
	printKeyValue(c.Out, "Methods", strings.Join(names, ", "))
}
