package deviation

import (
	"math"

	"github.com/montanaflynn/stats"
)

// madConstant makes the median absolute deviation a consistent estimator
// of the standard deviation for normal data.
const madConstant = 1.4826

// Spread is a location/scale pair.
type Spread struct {
	Center float64 // mean, or median when robust
	Scale  float64 // sample SD, or scaled MAD when robust
}

// Compute returns the spread of xs: mean and sample SD, or median and
// MAD when robust. Fewer than two finite values yield NaN scale.
func Compute(xs []float64, robust bool) Spread {
	data := finite(xs)
	if len(data) == 0 {
		return Spread{Center: math.NaN(), Scale: math.NaN()}
	}
	if robust {
		med, err := stats.Median(data)
		if err != nil {
			return Spread{Center: math.NaN(), Scale: math.NaN()}
		}
		mad, err := stats.MedianAbsoluteDeviation(data)
		if err != nil || len(data) < 2 {
			return Spread{Center: med, Scale: math.NaN()}
		}
		return Spread{Center: med, Scale: madConstant * mad}
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return Spread{Center: math.NaN(), Scale: math.NaN()}
	}
	if len(data) < 2 {
		return Spread{Center: mean, Scale: math.NaN()}
	}
	sd, err := stats.StandardDeviationSample(data)
	if err != nil {
		return Spread{Center: mean, Scale: math.NaN()}
	}
	return Spread{Center: mean, Scale: sd}
}

func finite(xs []float64) stats.Float64Data {
	out := make(stats.Float64Data, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}
