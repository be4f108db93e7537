package model

import (
	"regexp"
	"strings"
)

// InterceptName is the parameter name of the model intercept.
const InterceptName = "(Intercept)"

// Parameter types.
const (
	TypeIntercept   = "intercept"
	TypeNumeric     = "numeric"
	TypeFactor      = "factor"
	TypeInteraction = "interaction"
	TypeUnknown     = "unknown"
)

var (
	callRe   = regexp.MustCompile(`^([A-Za-z.][A-Za-z0-9._]*)\((.*)\)(.*)$`)
	identRe  = regexp.MustCompile(`^[A-Za-z.][A-Za-z0-9._]*`)
	factorRe = regexp.MustCompile(`^(as\.)?factor\((.*)\)(.*)$`)
)

// splitTopLevel splits s on sep, ignoring separators nested in parentheses.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + len(string(sep))
			}
		}
	}
	return append(parts, s[start:])
}

// Components splits an interaction parameter into its terms.
func Components(parameter string) []string {
	if parameter == InterceptName {
		return []string{parameter}
	}
	return splitTopLevel(parameter, ':')
}

// CleanName strips function wrappers from every term of a parameter name,
// returning the underlying variable names: "log(x)" becomes "x",
// "poly(x, 2)1" becomes "x", "I(x^2):z" becomes "x:z".
func CleanName(parameter string) string {
	parts := Components(parameter)
	for i, p := range parts {
		parts[i] = cleanTerm(p)
	}
	return strings.Join(parts, ":")
}

func cleanTerm(s string) string {
	s = strings.TrimSpace(s)
	if s == InterceptName {
		return s
	}
	if m := callRe.FindStringSubmatch(s); m != nil {
		args := splitTopLevel(m[2], ',')
		return cleanTerm(args[0])
	}
	if id := identRe.FindString(s); id != "" && id != s && strings.ContainsAny(s[len(id):], "^*/+-") {
		return id
	}
	return s
}

// IsFactorEncoded reports whether term uses inline factor syntax such as
// "factor(cyl)6" or "as.factor(g)B".
func IsFactorEncoded(term string) bool {
	return factorRe.MatchString(strings.TrimSpace(term))
}

// StripFactor removes inline factor syntax from every term:
// "factor(cyl)6" becomes "cyl6".
func StripFactor(parameter string) string {
	parts := Components(parameter)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if m := factorRe.FindStringSubmatch(p); m != nil {
			p = strings.TrimSpace(m[2]) + m[3]
		}
		parts[i] = p
	}
	return strings.Join(parts, ":")
}

// IsTransformed reports whether parameter involves a transformed
// predictor. Factor encodings are not transformations.
func IsTransformed(parameter string) bool {
	for _, term := range Components(parameter) {
		if IsFactorEncoded(term) {
			continue
		}
		if cleanTerm(term) != strings.TrimSpace(term) {
			return true
		}
	}
	return false
}

// Term describes how a parameter maps onto the data.
type Term struct {
	Parameter  string
	Type       string
	Variable   string // data variable; for interactions the first component's
	Components []Term // interaction components, nil otherwise
}

// ClassifyParameters maps each parameter to its type and data variable.
func ClassifyParameters(parameters []string, data *Frame) []Term {
	out := make([]Term, len(parameters))
	for i, p := range parameters {
		out[i] = classify(p, data)
	}
	return out
}

func classify(parameter string, data *Frame) Term {
	if parameter == InterceptName {
		return Term{Parameter: parameter, Type: TypeIntercept}
	}
	if parts := Components(parameter); len(parts) > 1 {
		t := Term{Parameter: parameter, Type: TypeInteraction}
		for _, p := range parts {
			t.Components = append(t.Components, classifyTerm(strings.TrimSpace(p), data))
		}
		t.Variable = t.Components[0].Variable
		return t
	}
	return classifyTerm(parameter, data)
}

func classifyTerm(term string, data *Frame) Term {
	if m := factorRe.FindStringSubmatch(term); m != nil {
		return Term{Parameter: term, Type: TypeFactor, Variable: strings.TrimSpace(m[2])}
	}
	if data == nil {
		return Term{Parameter: term, Type: TypeUnknown, Variable: term}
	}
	if v, ok := data.Var(term); ok {
		if v.IsFactor() {
			return Term{Parameter: term, Type: TypeFactor, Variable: term}
		}
		return Term{Parameter: term, Type: TypeNumeric, Variable: term}
	}
	// Dummy columns are named variable+level; pick the longest matching factor.
	best := ""
	for _, name := range data.Names() {
		v, _ := data.Var(name)
		if v.IsFactor() && strings.HasPrefix(term, name) && len(name) > len(best) {
			best = name
		}
	}
	if best != "" {
		return Term{Parameter: term, Type: TypeFactor, Variable: best}
	}
	if clean := cleanTerm(term); clean != term {
		if v, ok := data.Var(clean); ok && !v.IsFactor() {
			return Term{Parameter: term, Type: TypeNumeric, Variable: clean}
		}
	}
	return Term{Parameter: term, Type: TypeUnknown, Variable: term}
}
