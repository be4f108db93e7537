package standardize_test

import (
	"context"
	"fmt"

	"github.com/MatthieuRouland/effectsize/pkg/model/modeltest"
	"github.com/MatthieuRouland/effectsize/pkg/params"
	"github.com/MatthieuRouland/effectsize/pkg/standardize"
)

func ExampleParseMethod() {
	m, _ := standardize.ParseMethod("classic")
	fmt.Println(m)

	_, err := standardize.ParseMethod("bogus")
	fmt.Println(err)
	// Output:
	// basic
	// INVALID_ARGUMENT: unknown method "bogus" (must be one of: refit, posthoc, smart, basic, pseudo)
}

func ExampleRescaler_Rescale() {
	tbl := params.New(params.ColCoefficient)
	_ = tbl.Append(params.Row{Parameter: "x", Values: map[string]float64{params.ColCoefficient: 3}})

	f := params.Missing("x")
	f.Basic, f.ResponseBasic = 2, 4
	sf, _ := params.NewScaleFactors(f)

	spec, _ := standardize.Resolve(standardize.MethodBasic)
	r := standardize.NewRescaler()
	fmt.Printf("%.3f\n", r.Rescale(tbl, sf, spec).Value(0, params.ColCoefficient))

	spec.Exponentiate = true
	fmt.Printf("%.3f\n", r.Rescale(tbl, sf, spec).Value(0, params.ColCoefficient))
	// Output:
	// 1.500
	// 1.732
}

func ExampleParameters() {
	res, err := standardize.Parameters(context.Background(), modeltest.Mixed("id"), standardize.Options{
		Method: standardize.MethodPseudo,
		Robust: true,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Metadata.Method, res.Metadata.Robust)
	fmt.Println(res.Table.Columns())
	for _, w := range res.Warnings {
		fmt.Println(w)
	}
	// Output:
	// pseudo false
	// [Std_Coefficient CI CI_low CI_high]
	// robust standardization is not available for method "pseudo"; using non-robust deviations
}
