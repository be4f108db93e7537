// Package model is the introspection layer between fitted models and the
// standardization core.
//
// The core never sees concrete model types. It depends on capabilities:
//
//   - [Model]: family/link classification, response and model-frame
//     names, original data, design matrix and parameter extraction
//   - [Mixed]: a model with random grouping factors
//   - [Bayesian]: a model with posterior draws
//
// Adapters build these from a [Fit], the description of an already-fitted
// model:
//
//	lm, err := model.NewLinear(fit)                  // gaussian, identity
//	glm, err := model.NewGLM(fit, model.FamilyBinomial, model.LinkLogit)
//	mixed, err := model.NewMixed(lm, "school")       // adds Mixed
//	bayes, err := model.NewBayesian(mixed, draws)    // adds Bayesian, keeps Mixed
//
// # Parameter names
//
// Parameter names follow the usual formula conventions: "(Intercept)",
// plain variables ("x"), factor dummies ("groupB", "factor(cyl)6"),
// interactions ("x:groupB") and transformed terms ("log(x)",
// "poly(x, 2)1"). [CleanName], [StripFactor], [IsTransformed] and
// [ClassifyParameters] interpret them against the model data.
package model
