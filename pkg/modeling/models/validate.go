package models

import (
	"fmt"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

func oneInput(in []*grid.Grid) (*grid.Grid, error) {
	if len(in) != 1 {
		return nil, modeling.ErrInputCount
	}

	if in[0] == nil {
		return nil, modeling.ErrGridMustBeSet
	}

	return in[0], nil
}

func twoInputs(in []*grid.Grid) (*grid.Grid, *grid.Grid, error) {
	if len(in) != 2 {
		return nil, nil, modeling.ErrInputCount
	}

	if in[0] == nil || in[1] == nil {
		return nil, nil, modeling.ErrGridMustBeSet
	}

	return in[0], in[1], nil
}

// pairValues broadcasts x and y against each other and returns the aligned
// flattened values.
func pairValues(x, y *grid.Grid) ([]float64, []float64, error) {
	xb, err := grid.Map2(x, y, func(a, _ float64) float64 { return a })
	if err != nil {
		return nil, nil, err
	}

	yb, err := grid.Map2(x, y, func(_, b float64) float64 { return b })
	if err != nil {
		return nil, nil, err
	}

	return xb.Values(), yb.Values(), nil
}

// setNames names one parameter per set: a single set keeps the bare name,
// several sets get an index suffix.
func setNames(base string, k int) []string {
	if k == 1 {
		return []string{base}
	}

	names := make([]string, k)
	for i := range names {
		names[i] = fmt.Sprintf("%s_%d", base, i)
	}

	return names
}

// seqNames numbers parameters c0 through cN.
func seqNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", prefix, i)
	}

	return names
}
