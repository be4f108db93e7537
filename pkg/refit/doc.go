// Package refit standardizes a model's data and refits it, backing the
// "refit" standardization method.
//
// [Standardizer] does the data side: numeric predictors are z-scored, the
// response too for linear models, while factors and random grouping
// variables are kept. Fitting is delegated to a [Fitter]. [OLS] is a
// least-squares Fitter for fixed-effects linear models; other families
// need a Fitter backed by a real estimation routine.
//
//	r := refit.NewStandardizer(refit.OLS{}, logger)
//	res, err := standardize.Parameters(ctx, m, standardize.Options{
//	    Method:   standardize.MethodRefit,
//	    Refitter: r,
//	})
package refit
