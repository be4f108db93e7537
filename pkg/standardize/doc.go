// Package standardize computes standardized regression coefficients.
//
// A coefficient is standardized by re-expressing it in standard-deviation
// units of its predictor and, for linear models, of the response. Five
// methods are available:
//
//   - refit: refit the model on standardized data (needs a [Refitter])
//   - posthoc: rescale by the original variable's deviation, with the
//     response deviation of the design matrix
//   - smart: rescale by the original variable's deviation on both sides
//   - basic: rescale by the design-matrix column's deviation
//   - pseudo: rescale by within- or between-group deviations of a
//     two-level mixed model
//
// "classic" is accepted as a synonym of basic.
//
// # Fallbacks
//
// Requests a model cannot honour are downgraded, never rejected: pseudo on
// a model without exactly one grouping factor and smart or posthoc on
// transformed terms use basic instead, and robust deviations are dropped
// for pseudo. Each downgrade adds one entry to [Result.Warnings] and is
// logged at WARN level. [Metadata.Method] records the method applied.
//
// # Usage
//
//	res, err := standardize.Parameters(ctx, m, standardize.Options{
//	    Method: standardize.MethodSmart,
//	    Logger: logger,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Table.Column("Std_Coefficient"))
//
// Post-hoc methods use the deviations reported by [Options.Provider],
// which defaults to [deviation.Calculator].
package standardize
