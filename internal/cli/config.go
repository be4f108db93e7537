package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/MatthieuRouland/effectsize/pkg/standardize"
)

// config is the on-disk configuration file.
//
//	[standardize]
//	method = "posthoc"
//	ci = 0.9
//	robust = false
//	two_sd = true
//
//	[output]
//	format = "json"
//	digits = 3
type config struct {
	Standardize standardizeConfig `toml:"standardize"`
	Output      outputConfig      `toml:"output"`
}

type standardizeConfig struct {
	Method          string  `toml:"method"`
	CI              float64 `toml:"ci"`
	Robust          bool    `toml:"robust"`
	TwoSD           bool    `toml:"two_sd"`
	Exponentiate    bool    `toml:"exponentiate"`
	ExcludeResponse bool    `toml:"exclude_response"`
}

type outputConfig struct {
	Format string `toml:"format"`
	Digits int    `toml:"digits"`
}

// options converts the config table into standardization options.
func (s standardizeConfig) options() standardize.Options {
	return standardize.Options{
		Method:          standardize.Method(s.Method),
		CI:              s.CI,
		Robust:          s.Robust,
		TwoSD:           s.TwoSD,
		Exponentiate:    s.Exponentiate,
		ExcludeResponse: s.ExcludeResponse,
	}
}

// loadConfig reads the config file at path. A missing file or an empty
// path yields the zero config.
func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return config{}, nil
	}
	if err != nil {
		return config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// =============================================================================
// Flags
// =============================================================================

// stdFlags holds the standardization flags shared by parameters and posteriors.
type stdFlags struct {
	method          string
	ci              float64
	robust          bool
	twoSD           bool
	exponentiate    bool
	excludeResponse bool
}

// register adds the flags to cmd. The exponentiate flag is only offered
// where estimates can be exponentiated.
func (f *stdFlags) register(cmd *cobra.Command, method standardize.Method, exponentiate bool) {
	cmd.Flags().StringVarP(&f.method, "method", "m", string(method), "standardization method: refit, posthoc, smart, basic, pseudo")
	cmd.Flags().Float64Var(&f.ci, "ci", standardize.DefaultCI, "confidence level of the intervals")
	cmd.Flags().BoolVar(&f.robust, "robust", false, "use median and MAD instead of mean and SD")
	cmd.Flags().BoolVar(&f.twoSD, "two-sd", false, "scale by two standard deviations")
	cmd.Flags().BoolVar(&f.excludeResponse, "no-response", false, "keep the response on its original scale")
	if exponentiate {
		cmd.Flags().BoolVarP(&f.exponentiate, "exponentiate", "e", false, "report exponentiated coefficients (odds ratios, IRR)")
	}
	_ = cmd.RegisterFlagCompletionFunc("method", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(standardize.Methods()))
		for _, m := range standardize.Methods() {
			names = append(names, string(m))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// apply overrides opts with every flag set on the command line.
func (f *stdFlags) apply(cmd *cobra.Command, opts *standardize.Options) error {
	changed := cmd.Flags().Changed
	if changed("method") || opts.Method == "" {
		m, err := standardize.ParseMethod(f.method)
		if err != nil {
			return err
		}
		opts.Method = m
	}
	if changed("ci") || opts.CI == 0 {
		opts.CI = f.ci
	}
	if changed("robust") {
		opts.Robust = f.robust
	}
	if changed("two-sd") {
		opts.TwoSD = f.twoSD
	}
	if changed("exponentiate") {
		opts.Exponentiate = f.exponentiate
	}
	if changed("no-response") {
		opts.ExcludeResponse = f.excludeResponse
	}
	return nil
}

// outFlags holds the output flags.
type outFlags struct {
	format string
	output string
	digits int
}

const (
	formatTable = "table"
	formatJSON  = "json"

	defaultDigits = 2
)

func (f *outFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", formatTable, "output format: table, json")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write JSON output to file instead of stdout")
	cmd.Flags().IntVar(&f.digits, "digits", defaultDigits, "decimal places in table output")
}

// resolve fills unset output flags from the config and validates the format.
func (f *outFlags) resolve(cmd *cobra.Command, cfg outputConfig) error {
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		f.format = cfg.Format
	}
	if !cmd.Flags().Changed("digits") && cfg.Digits > 0 {
		f.digits = cfg.Digits
	}
	if f.output != "" {
		f.format = formatJSON
	}
	switch f.format {
	case formatTable, formatJSON:
		return nil
	}
	return fmt.Errorf("invalid format %q (must be one of: %s, %s)", f.format, formatTable, formatJSON)
}
