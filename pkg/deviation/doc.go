// Package deviation computes the scale factors used to standardize model
// parameters after fitting.
//
// For every non-intercept column of a model's design matrix, [Calculator]
// reports three predictor-side deviations and their response-side partners:
//
//   - Basic: spread of the design-matrix column itself
//   - Smart: spread of the underlying data variable; factor dummies are
//     left at 1 and interactions multiply their components
//   - Pseudo: for two-level mixed models, the within-group or between-group
//     spread of the column, paired with the matching variance component of
//     the response
//
// Spreads are the mean and sample SD, or the median and MAD (scaled to be
// consistent for normal data) when robust. Response deviations apply to
// linear models only; other families keep the response on its own scale.
package deviation
