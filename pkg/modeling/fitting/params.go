package fitting

import (
	"math"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/Vanoraco/astropy/pkg/modeling"
)

// ParameterSet projects a model's parameters onto the subspace the solver
// searches, the parameters that are neither fixed nor tied.
type ParameterSet struct {
	model  modeling.Model
	cons   *modeling.Constraints
	free   []int
	values []float64
}

func NewParameterSet(m modeling.Model) *ParameterSet {
	cons := m.Constraints()
	values := m.Parameters()

	var free []int
	for i := 0; i < cons.Len(); i++ {
		if cons.Free(i) {
			free = append(free, i)
		}
	}

	return &ParameterSet{model: m, cons: cons, free: free, values: values}
}

// NumFree returns the dimension of the search space.
func (ps *ParameterSet) NumFree() int {
	return len(ps.free)
}

// Flat returns the current free parameter values in declaration order.
func (ps *ParameterSet) Flat() []float64 {
	flat := make([]float64, len(ps.free))
	for j, p := range ps.free {
		flat[j] = ps.values[p]
	}

	return flat
}

// FreeIndices returns the positions of the free parameters within the full
// parameter list.
func (ps *ParameterSet) FreeIndices() []int {
	return append([]int(nil), ps.free...)
}

// Fixed reports which parameters were held out of the fit, whether fixed or
// tied. The mask is aligned with the model's full parameter list.
func (ps *ParameterSet) Fixed() []bool {
	mask := make([]bool, ps.cons.Len())
	for i := range mask {
		mask[i] = !ps.cons.Free(i)
	}

	return mask
}

// HasTied reports whether any parameter is tied to an expression.
func (ps *ParameterSet) HasTied() bool {
	for i := 0; i < ps.cons.Len(); i++ {
		if ps.cons.Tied(i) != nil {
			return true
		}
	}

	return false
}

// WriteBack pushes solver values into the model. Free values are clamped to
// their bounds and tied parameters are recomputed before the model sees them.
func (ps *ParameterSet) WriteBack(flat []float64) error {
	if len(flat) != len(ps.free) {
		exceptions.Panicf("parameter write-back expects %d values, got %d", len(ps.free), len(flat))
	}

	for j, p := range ps.free {
		v := flat[j]
		if b := ps.cons.Bound(p); b != nil {
			v = math.Max(b.Min, math.Min(b.Max, v))
		}

		ps.values[p] = v
	}

	for i := 0; i < ps.cons.Len(); i++ {
		if expr := ps.cons.Tied(i); expr != nil {
			ps.values[i] = expr(ps.values)
		}
	}

	return errors.Wrap(ps.model.SetParameters(ps.values), "unable to write parameters back")
}
