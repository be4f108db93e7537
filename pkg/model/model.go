package model

import (
	"github.com/MatthieuRouland/effectsize/pkg/params"
)

// Family is the error distribution of a model.
type Family string

// Supported families.
const (
	FamilyGaussian         Family = "gaussian"
	FamilyBinomial         Family = "binomial"
	FamilyPoisson          Family = "poisson"
	FamilyNegativeBinomial Family = "negative_binomial"
	FamilyGamma            Family = "gamma"
)

// Link is the link function of a model.
type Link string

// Supported links.
const (
	LinkIdentity Link = "identity"
	LinkLogit    Link = "logit"
	LinkProbit   Link = "probit"
	LinkLog      Link = "log"
	LinkInverse  Link = "inverse"
)

// Info classifies a model.
type Info struct {
	Family     Family
	Link       Link
	IsLinear   bool // gaussian response with identity link
	IsMixed    bool
	IsBayesian bool
}

// CoefficientName returns the name under which coefficients are reported.
// Exponentiated log-odds are odds ratios, exponentiated binomial log-link
// coefficients are risk ratios and exponentiated count-model coefficients
// are incidence rate ratios.
func (i Info) CoefficientName(exponentiate bool) string {
	if !exponentiate {
		return "Coefficient"
	}
	switch {
	case i.Family == FamilyBinomial && i.Link == LinkLogit:
		return "Odds Ratio"
	case i.Family == FamilyBinomial && i.Link == LinkLog:
		return "Risk Ratio"
	case (i.Family == FamilyPoisson || i.Family == FamilyNegativeBinomial) && i.Link == LinkLog:
		return "IRR"
	}
	return "Coefficient"
}

// Model is the introspection surface the standardization core depends on.
// Concrete model types are reached through adapters such as [GLM],
// [MixedModel] and [BayesianModel].
type Model interface {
	// Info returns the family/link classification.
	Info() Info

	// Response returns the declared response variable name.
	Response() string

	// ModelFrame returns the column names of the model frame. The first
	// name is the response term as written in the formula, e.g. "log(y)".
	ModelFrame() []string

	// Data returns the original (untransformed) data the model was fit on.
	Data() *Frame

	// ModelMatrix returns the fixed-effects design matrix.
	ModelMatrix() *Matrix

	// Parameters extracts point estimates, standard errors and confidence
	// intervals at level ci. When exponentiate is true, estimates and
	// interval bounds are exponentiated.
	Parameters(ci float64, exponentiate bool) (*params.Table, error)
}

// Mixed is a model with random grouping factors.
type Mixed interface {
	Model

	// RandomGroups returns the names of the random grouping factors.
	RandomGroups() []string
}

// Bayesian is a model that exposes posterior draws.
type Bayesian interface {
	Model

	// Posterior returns the draws of the fixed-effects parameters.
	Posterior() (*params.Draws, error)
}

// RandomGroups returns m's grouping factors, or nil when m is not mixed.
func RandomGroups(m Model) []string {
	if mm, ok := m.(Mixed); ok {
		return mm.RandomGroups()
	}
	return nil
}
