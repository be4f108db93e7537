package standardize

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/MatthieuRouland/effectsize/pkg/model"
	"github.com/MatthieuRouland/effectsize/pkg/observability"
)

// CanPseudo reports whether m is a mixed model with exactly one random
// grouping factor.
func CanPseudo(m model.Model) bool {
	return m.Info().IsMixed && len(model.RandomGroups(m)) == 1
}

// CanSmart reports whether smart and posthoc deviations are defined for m.
// They are not when the response is transformed in the formula, or when a
// parameter is a transformed predictor. Factor encodings such as
// "factor(g)B" do not count as transformations.
func CanSmart(m model.Model, parameters []string) bool {
	if frame := m.ModelFrame(); len(frame) > 0 && frame[0] != m.Response() {
		return false
	}
	for _, p := range parameters {
		if model.IsTransformed(p) {
			return false
		}
	}
	return true
}

// CanUse reports whether method is valid for m and its parameters.
func CanUse(method Method, m model.Model, parameters []string) bool {
	switch method {
	case MethodPseudo:
		return CanPseudo(m)
	case MethodSmart, MethodPosthoc:
		return CanSmart(m, parameters)
	}
	return ValidMethods[method]
}

// Decision is the outcome of an applicability check.
type Decision struct {
	Method   Method
	Robust   bool
	Warnings []string
}

// Checker downgrades requests a model cannot honour. Each incompatibility
// yields one warning, logged at WARN level and reported to the hooks.
type Checker struct {
	Logger *log.Logger
	Hooks  observability.StandardizeHooks
}

// Check returns the method and robust flag to use for m. It never fails:
// pseudo on a model without exactly one grouping factor and smart or
// posthoc on transformed terms fall back to basic, and robust is dropped
// for pseudo.
func (c *Checker) Check(ctx context.Context, method Method, robust bool, m model.Model, parameters []string) Decision {
	d := Decision{Method: method, Robust: robust}

	if d.Method == MethodPseudo && !CanPseudo(m) {
		c.warn(ctx, &d, string(MethodPseudo), string(MethodBasic), fmt.Sprintf(
			"method %q needs a mixed model with exactly one grouping factor (found %d); using %q instead",
			MethodPseudo, len(model.RandomGroups(m)), MethodBasic))
		d.Method = MethodBasic
	}

	if (d.Method == MethodSmart || d.Method == MethodPosthoc) && !CanSmart(m, parameters) {
		c.warn(ctx, &d, string(d.Method), string(MethodBasic), fmt.Sprintf(
			"method %q does not support transformed terms; using %q instead", d.Method, MethodBasic))
		d.Method = MethodBasic
	}

	if d.Method == MethodPseudo && d.Robust {
		c.warn(ctx, &d, "robust", "non-robust",
			`robust standardization is not available for method "pseudo"; using non-robust deviations`)
		d.Robust = false
	}

	return d
}

func (c *Checker) warn(ctx context.Context, d *Decision, from, to, msg string) {
	d.Warnings = append(d.Warnings, msg)
	if c.Logger != nil {
		c.Logger.Warn(msg)
	}
	if c.Hooks != nil {
		c.Hooks.OnFallback(ctx, from, to, msg)
	}
}
