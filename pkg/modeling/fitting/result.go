package fitting

import (
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// Result reports the outcome of a single fit. Params holds every model
// parameter after the fit and Fitted only the values the solver searched.
// Fixed is aligned with Params and marks the parameters that were held.
type Result struct {
	Params []float64
	Fitted []float64
	Fixed  []bool
	RSS    float64
}

func flattenOutputs(outs []*grid.Grid) []float64 {
	total := 0
	for _, g := range outs {
		total += g.Len()
	}

	flat := make([]float64, 0, total)
	for _, g := range outs {
		flat = append(flat, g.Values()...)
	}

	return flat
}

func residualSumSquares(predicted, target, weights []float64) float64 {
	var rss float64
	for k, v := range predicted {
		r := v - target[k]
		if weights != nil {
			r *= weights[k]
		}

		rss += r * r
	}

	return rss
}
