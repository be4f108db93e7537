// Package pkg provides the core libraries for effectsize.
//
// # Overview
//
// Effectsize turns the unstandardized coefficients of a fitted regression
// model into standardized coefficients. The pkg directory is organized into
// three areas:
//
//  1. [standardize] - Orchestration (method checks, fallback, rescaling)
//  2. [model], [params], [deviation] - Model introspection, parameter and
//     scale-factor tables, deviations
//  3. [refit], [io] - Refitting on standardized data and model files
//
// # Architecture
//
// The typical data flow through effectsize:
//
//	Model file (JSON / YAML / TOML)
//	         ↓
//	    [io] package (decode into a model adapter)
//	         ↓
//	    [standardize] package (check method, fall back if needed)
//	         ↓
//	    [deviation] package (scale factors)   or   [refit] package (refit)
//	         ↓
//	    Standardized table / draws + metadata
//
// # Quick Start
//
// Standardize the coefficients of a model file:
//
//	import (
//	    "context"
//	    "github.com/MatthieuRouland/effectsize/pkg/io"
//	    "github.com/MatthieuRouland/effectsize/pkg/standardize"
//	)
//
//	m, _ := io.ImportModel("model.json")
//	res, _ := standardize.Parameters(context.Background(), m, standardize.Options{
//	    Method: standardize.MethodPosthoc,
//	    TwoSD:  true,
//	})
//	fmt.Println(res.Table.Column("Std_Coefficient"))
//
// # Main Packages
//
// [standardize] - Method parsing and resolution, the applicability checker
// with its warn-and-fall-back rules, the coefficient rescaler, and the
// Parameters, Table and Posteriors entry points.
//
// [deviation] - The scale-factor provider. [deviation.Calculator] derives
// basic, smart and pseudo deviations of every parameter from the model's
// data and design matrix.
//
// [refit] - Standardizes a model's data and refits it through a pluggable
// Fitter. [refit.OLS] handles plain linear models.
//
// [model] - Capability interfaces (Model, Mixed, Bayesian) and in-memory
// adapters built from a fit description.
//
// [params] - Parameter tables, scale-factor tables and posterior draws.
//
// [io] - Model file decoding and JSON result export.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for tracing standardization and refit calls.
//
// # Testing
//
// Run tests:
//
//	go test ./...                 # All tests
//	go test ./pkg/standardize     # Specific package
//	go test -run Example ./pkg/...  # Examples only
//
// [standardize]: https://pkg.go.dev/github.com/MatthieuRouland/effectsize/pkg/standardize
// [model]: https://pkg.go.dev/github.com/MatthieuRouland/effectsize/pkg/model
// [params]: https://pkg.go.dev/github.com/MatthieuRouland/effectsize/pkg/params
// [deviation]: https://pkg.go.dev/github.com/MatthieuRouland/effectsize/pkg/deviation
// [deviation.Calculator]: https://pkg.go.dev/github.com/MatthieuRouland/effectsize/pkg/deviation#Calculator
// [refit]: https://pkg.go.dev/github.com/MatthieuRouland/effectsize/pkg/refit
// [refit.OLS]: https://pkg.go.dev/github.com/MatthieuRouland/effectsize/pkg/refit#OLS
// [io]: https://pkg.go.dev/github.com/MatthieuRouland/effectsize/pkg/io
// [errors]: https://pkg.go.dev/github.com/MatthieuRouland/effectsize/pkg/errors
// [observability]: https://pkg.go.dev/github.com/MatthieuRouland/effectsize/pkg/observability
package pkg
