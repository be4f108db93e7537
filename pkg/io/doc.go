// Package io reads fitted-model descriptions and writes standardization
// reports.
//
// # Model files
//
// A model file describes an already-fitted model. It can be written in
// JSON, YAML or TOML; [ImportModel] picks the decoder from the extension
// (.json, .yaml, .yml, .toml). In JSON:
//
//	{
//	  "family": "gaussian",
//	  "link": "identity",
//	  "response": "y",
//	  "terms": ["y", "x", "g"],
//	  "df": 3,
//	  "groups": ["site"],
//	  "data": [
//	    {"name": "y", "numeric": [2, 4, 5, 4, 5, 7]},
//	    {"name": "g", "levels": ["a", "b", "a", "b", "a", "b"]}
//	  ],
//	  "matrix": [{"name": "(Intercept)", "values": [1, 1, 1, 1, 1, 1]}],
//	  "coefficients": [{"parameter": "(Intercept)", "estimate": 1.6, "se": 0.9}],
//	  "posterior": [{"name": "(Intercept)", "values": [1.5, 1.7]}]
//	}
//
// Required: response, data and coefficients. Family defaults to gaussian
// and link to the family's canonical link. Terms are the model-frame
// column names with the response term first; "log(y)" there marks a
// transformed response. The matrix is rebuilt from the coefficient names
// when omitted, which works for plain numeric terms, factor dummies and
// their interactions. Groups make the model mixed and posterior draws make
// it Bayesian. Unknown keys are rejected.
//
// # Reports
//
// [WriteJSON] and [ExportJSON] write a [standardize.Result] as a JSON
// document identified by a random report_id. Missing values become null.
package io
