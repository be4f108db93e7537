package standardize

import (
	"strings"

	"github.com/MatthieuRouland/effectsize/pkg/errors"
	"github.com/MatthieuRouland/effectsize/pkg/params"
)

// Method selects how parameters are standardized.
type Method string

// Standardization methods.
const (
	MethodRefit   Method = "refit"   // refit the model on standardized data
	MethodPosthoc Method = "posthoc" // smart predictor deviation, basic response deviation
	MethodSmart   Method = "smart"   // deviations of the original variables
	MethodBasic   Method = "basic"   // deviations of the design-matrix columns
	MethodPseudo  Method = "pseudo"  // within/between deviations of two-level models
)

// methodClassic is the legacy spelling of MethodBasic.
const methodClassic = "classic"

// DefaultMethod is used when no method is given.
const DefaultMethod = MethodRefit

// ValidMethods is the set of supported methods.
var ValidMethods = map[Method]bool{
	MethodRefit:   true,
	MethodPosthoc: true,
	MethodSmart:   true,
	MethodBasic:   true,
	MethodPseudo:  true,
}

// Methods returns every method in documentation order.
func Methods() []Method {
	return []Method{MethodRefit, MethodPosthoc, MethodSmart, MethodBasic, MethodPseudo}
}

// ParseMethod maps a method name to a Method. Matching ignores case and
// surrounding space, and "classic" is accepted for basic.
func ParseMethod(s string) (Method, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == methodClassic {
		return MethodBasic, nil
	}
	if m := Method(name); ValidMethods[m] {
		return m, nil
	}
	return "", unknownMethod(s)
}

func unknownMethod(name any) error {
	return errors.New(errors.ErrCodeInvalidArgument,
		"unknown method %q (must be one of: refit, posthoc, smart, basic, pseudo)", name)
}

// RescaleSpec says which scale-factor columns rescale a parameter table.
type RescaleSpec struct {
	Method    Method
	Predictor params.ScaleColumn
	Response  params.ScaleColumn

	// Exponentiate raises values to the deviation ratio instead of
	// multiplying, for coefficients on an exponentiated scale.
	Exponentiate bool

	// IgnoreResponse treats the response deviation as 1.
	IgnoreResponse bool
}

// Resolve returns the scale-factor columns of a post-hoc method.
// Refit has no columns and fails like an unknown method.
//
// Posthoc pairs the smart predictor deviation with the basic response
// deviation, unlike smart which uses the smart response deviation.
func Resolve(m Method) (RescaleSpec, error) {
	switch m {
	case MethodBasic:
		return RescaleSpec{Method: m, Predictor: params.DeviationBasic, Response: params.DeviationResponseBasic}, nil
	case MethodPosthoc:
		return RescaleSpec{Method: m, Predictor: params.DeviationSmart, Response: params.DeviationResponseBasic}, nil
	case MethodSmart:
		return RescaleSpec{Method: m, Predictor: params.DeviationSmart, Response: params.DeviationResponseSmart}, nil
	case MethodPseudo:
		return RescaleSpec{Method: m, Predictor: params.DeviationPseudo, Response: params.DeviationResponsePseudo}, nil
	case MethodRefit:
		return RescaleSpec{}, errors.New(errors.ErrCodeInvalidArgument, "method %q does not rescale parameters", m)
	}
	return RescaleSpec{}, unknownMethod(m)
}
