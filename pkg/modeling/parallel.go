package modeling

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// ParallelComposite superimposes models over a shared input: every output
// variable is the matching input plus the sum of the constituents'
// contributions. The superposition has no analytic inverse.
type ParallelComposite struct {
	models []Model
	inMap  []string
	outMap []string
}

// ParallelOption configures a parallel composite.
type ParallelOption func(c *ParallelComposite)

// ParallelInMap sets the variable names the composite reads from a
// LabeledData container.
func ParallelInMap(names ...string) ParallelOption {
	return func(c *ParallelComposite) {
		c.inMap = copyNames(names)
	}
}

// ParallelOutMap sets the variable names the composite binds. It defaults to
// the input map, which updates the variables in place.
func ParallelOutMap(names ...string) ParallelOption {
	return func(c *ParallelComposite) {
		c.outMap = copyNames(names)
	}
}

// NewParallel builds a parallel composite. Every constituent must consume
// and produce the same number of variables, adding a contribution onto the
// input requires matching arities.
func NewParallel(models []Model, opts ...ParallelOption) (*ParallelComposite, error) {
	if len(models) == 0 {
		return nil, ErrNoModels
	}

	for i, m := range models {
		if m == nil {
			return nil, errors.Wrapf(ErrModelMustBeSet, "model %d", i)
		}
	}

	arity := len(models[0].Inputs())

	for i, m := range models {
		if len(m.Inputs()) != arity || len(m.Outputs()) != arity {
			return nil, errors.Wrapf(ErrArityMismatch, "model %d (%s) has %d inputs and %d outputs, want %d of each",
				i, m.Kind(), len(m.Inputs()), len(m.Outputs()), arity)
		}
	}

	c := &ParallelComposite{models: make([]Model, len(models))}
	copy(c.models, models)

	for _, opt := range opts {
		opt(c)
	}

	if c.outMap != nil && c.inMap == nil {
		return nil, ErrMapPair
	}

	if c.inMap != nil && len(c.inMap) != arity {
		return nil, errors.Wrap(ErrInputCount, "input map")
	}

	if c.outMap != nil && len(c.outMap) != arity {
		return nil, errors.Wrap(ErrOutputCount, "output map")
	}

	if c.inMap != nil && c.outMap == nil {
		c.outMap = copyNames(c.inMap)
	}

	return c, nil
}

// Kind implements Model.
func (c *ParallelComposite) Kind() string {
	return "parallel"
}

// Models returns the constituent models.
func (c *ParallelComposite) Models() []Model {
	out := make([]Model, len(c.models))
	copy(out, c.models)

	return out
}

// Inputs implements Model.
func (c *ParallelComposite) Inputs() []string {
	if c.inMap != nil {
		return copyNames(c.inMap)
	}

	return c.models[0].Inputs()
}

// Outputs implements Model.
func (c *ParallelComposite) Outputs() []string {
	if c.outMap != nil {
		return copyNames(c.outMap)
	}

	return c.models[0].Outputs()
}

// ParamNames implements Model. Names are prefixed with the constituent
// index.
func (c *ParallelComposite) ParamNames() []string {
	out := make([]string, 0, len(c.models))
	for i, m := range c.models {
		for _, name := range m.ParamNames() {
			out = append(out, fmt.Sprintf("%d.%s", i, name))
		}
	}

	return out
}

// Parameters implements Model.
func (c *ParallelComposite) Parameters() []float64 {
	out := make([]float64, 0, len(c.models))
	for _, m := range c.models {
		out = append(out, m.Parameters()...)
	}

	return out
}

// SetParameters implements Model.
func (c *ParallelComposite) SetParameters(values []float64) error {
	total := 0
	for _, m := range c.models {
		total += len(m.ParamNames())
	}

	if len(values) != total {
		return errors.Wrapf(ErrParameterCount, "%d values for %d parameters", len(values), total)
	}

	offset := 0

	for i, m := range c.models {
		n := len(m.ParamNames())
		if err := m.SetParameters(values[offset : offset+n]); err != nil {
			return errors.Wrapf(err, "model %d", i)
		}

		offset += n
	}

	return nil
}

// Constraints implements Model, concatenating per-constituent constraints
// positionally.
func (c *ParallelComposite) Constraints() *Constraints {
	parts := make([]*Constraints, len(c.models))
	for i, m := range c.models {
		parts[i] = m.Constraints()
	}

	return concatConstraints(parts)
}

// Copy implements Model.
func (c *ParallelComposite) Copy() Model {
	models := make([]Model, len(c.models))
	for i, m := range c.models {
		models[i] = m.Copy()
	}

	return &ParallelComposite{models: models, inMap: c.inMap, outMap: c.outMap}
}

// Eval implements Model: out_j = in_j plus the sum over the constituents of
// their j-th output.
func (c *ParallelComposite) Eval(in ...*grid.Grid) ([]*grid.Grid, error) {
	if len(in) != len(c.models[0].Inputs()) {
		return nil, ErrInputCount
	}

	acc := make([]*grid.Grid, len(in))
	copy(acc, in)

	for i, m := range c.models {
		out, err := m.Eval(in...)
		if err != nil {
			return nil, errors.Wrapf(err, "model %d", i)
		}

		for j := range acc {
			sum, err := grid.Add(acc[j], out[j])
			if err != nil {
				return nil, errors.Wrapf(err, "model %d output %d", i, j)
			}

			acc[j] = sum
		}
	}

	return acc, nil
}

// EvalLabeled implements LabeledEvaluator. The composite reads the variables
// named by its input map, evaluates, and binds the results under its output
// map, the input map by default.
func (c *ParallelComposite) EvalLabeled(ld *LabeledData) (*LabeledData, error) {
	if ld == nil {
		return nil, ErrDataMustBeSet
	}

	if c.inMap == nil {
		return nil, ErrNoRouting
	}

	in := make([]*grid.Grid, 0, len(c.inMap))

	for _, name := range c.inMap {
		g, err := ld.Get(name)
		if err != nil {
			return nil, err
		}

		in = append(in, g)
	}

	out, err := c.Eval(in...)
	if err != nil {
		return nil, err
	}

	for j, name := range c.outMap {
		if err := ld.Set(name, out[j]); err != nil {
			return nil, err
		}
	}

	return ld, nil
}

var (
	_ Model            = (*ParallelComposite)(nil)
	_ LabeledEvaluator = (*ParallelComposite)(nil)
)
