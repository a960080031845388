package modeling

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// SerialComposite chains models so that every stage consumes the outputs of
// the previous one. In positional mode the grids flow from stage to stage
// directly. With routing maps every stage reads its inputs from a LabeledData
// container by name and binds its outputs back, so intermediate variables can
// be updated in place or fan out to later stages.
type SerialComposite struct {
	models  []Model
	inMaps  [][]string
	outMaps [][]string
}

// NewSerial builds a serial composite. Both maps must be nil for positional
// mode, or both present with one name list per stage.
func NewSerial(models []Model, inputMaps, outputMaps [][]string) (*SerialComposite, error) {
	if len(models) == 0 {
		return nil, ErrNoModels
	}

	for i, m := range models {
		if m == nil {
			return nil, errors.Wrapf(ErrModelMustBeSet, "stage %d", i)
		}
	}

	if (inputMaps == nil) != (outputMaps == nil) {
		return nil, ErrMapPair
	}

	c := &SerialComposite{models: make([]Model, len(models))}
	copy(c.models, models)

	if inputMaps == nil {
		for i := 1; i < len(models); i++ {
			if len(models[i-1].Outputs()) != len(models[i].Inputs()) {
				return nil, errors.Wrapf(ErrArityMismatch, "stage %d feeds stage %d", i-1, i)
			}
		}

		return c, nil
	}

	if len(inputMaps) != len(models) || len(outputMaps) != len(models) {
		return nil, errors.Wrapf(ErrMapCount, "%d models, %d input maps, %d output maps",
			len(models), len(inputMaps), len(outputMaps))
	}

	for i, m := range models {
		if len(inputMaps[i]) != len(m.Inputs()) {
			return nil, errors.Wrapf(ErrInputCount, "input map of stage %d", i)
		}

		if len(outputMaps[i]) != len(m.Outputs()) {
			return nil, errors.Wrapf(ErrOutputCount, "output map of stage %d", i)
		}
	}

	c.inMaps = copyMaps(inputMaps)
	c.outMaps = copyMaps(outputMaps)

	return c, nil
}

// Kind implements Model.
func (c *SerialComposite) Kind() string {
	return "serial"
}

// Models returns the constituent models in stage order.
func (c *SerialComposite) Models() []Model {
	out := make([]Model, len(c.models))
	copy(out, c.models)

	return out
}

// StageInputs returns the variable names stage i reads.
func (c *SerialComposite) StageInputs(i int) []string {
	if c.inMaps != nil {
		return copyNames(c.inMaps[i])
	}

	return c.models[i].Inputs()
}

// StageOutputs returns the variable names stage i binds.
func (c *SerialComposite) StageOutputs(i int) []string {
	if c.outMaps != nil {
		return copyNames(c.outMaps[i])
	}

	return c.models[i].Outputs()
}

// Inputs implements Model. The composite consumes what its first stage
// consumes.
func (c *SerialComposite) Inputs() []string {
	if c.inMaps != nil {
		return copyNames(c.inMaps[0])
	}

	return c.models[0].Inputs()
}

// Outputs implements Model. The composite produces what its last stage
// produces.
func (c *SerialComposite) Outputs() []string {
	if c.outMaps != nil {
		return copyNames(c.outMaps[len(c.outMaps)-1])
	}

	return c.models[len(c.models)-1].Outputs()
}

// ParamNames implements Model. Names are prefixed with the stage index.
func (c *SerialComposite) ParamNames() []string {
	out := make([]string, 0, len(c.models))
	for i, m := range c.models {
		for _, name := range m.ParamNames() {
			out = append(out, fmt.Sprintf("%d.%s", i, name))
		}
	}

	return out
}

// Parameters implements Model, concatenating the constituent vectors in
// stage order.
func (c *SerialComposite) Parameters() []float64 {
	out := make([]float64, 0, len(c.models))
	for _, m := range c.models {
		out = append(out, m.Parameters()...)
	}

	return out
}

// SetParameters implements Model, slicing the vector back onto the stages.
func (c *SerialComposite) SetParameters(values []float64) error {
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
			return errors.Wrapf(err, "stage %d", i)
		}

		offset += n
	}

	return nil
}

// Constraints implements Model. Constituent constraints are scoped per stage
// and concatenated positionally.
func (c *SerialComposite) Constraints() *Constraints {
	parts := make([]*Constraints, len(c.models))
	for i, m := range c.models {
		parts[i] = m.Constraints()
	}

	return concatConstraints(parts)
}

// Copy implements Model.
func (c *SerialComposite) Copy() Model {
	models := make([]Model, len(c.models))
	for i, m := range c.models {
		models[i] = m.Copy()
	}

	return &SerialComposite{models: models, inMaps: c.inMaps, outMaps: c.outMaps}
}

// Eval implements Model. In positional mode the outputs of each stage become
// the inputs of the next. With routing maps the arguments are bound under the
// first stage's input names and the grids named by the last stage's output
// map are returned.
func (c *SerialComposite) Eval(in ...*grid.Grid) ([]*grid.Grid, error) {
	if c.inMaps == nil {
		if len(in) != len(c.models[0].Inputs()) {
			return nil, errors.Wrap(ErrInputCount, "stage 0")
		}

		current := in

		for i, m := range c.models {
			out, err := m.Eval(current...)
			if err != nil {
				return nil, errors.Wrapf(err, "stage %d", i)
			}

			current = out
		}

		return current, nil
	}

	if len(in) != len(c.inMaps[0]) {
		return nil, errors.Wrap(ErrInputCount, "stage 0")
	}

	ld, err := NewLabeledData(in, c.inMaps[0])
	if err != nil {
		return nil, err
	}

	if _, err := c.EvalLabeled(ld); err != nil {
		return nil, err
	}

	last := c.outMaps[len(c.outMaps)-1]
	out := make([]*grid.Grid, 0, len(last))

	for _, name := range last {
		g, err := ld.Get(name)
		if err != nil {
			return nil, err
		}

		out = append(out, g)
	}

	return out, nil
}

// EvalLabeled implements LabeledEvaluator. Every stage fetches its inputs
// from ld by its input map names and binds its outputs under its output map
// names, rebinding updates a variable in place for the following stages. The
// mutated container is returned.
func (c *SerialComposite) EvalLabeled(ld *LabeledData) (*LabeledData, error) {
	if ld == nil {
		return nil, ErrDataMustBeSet
	}

	if c.inMaps == nil {
		return nil, ErrNoRouting
	}

	for i, m := range c.models {
		in := make([]*grid.Grid, 0, len(c.inMaps[i]))

		for _, name := range c.inMaps[i] {
			g, err := ld.Get(name)
			if err != nil {
				return nil, errors.Wrapf(err, "stage %d", i)
			}

			in = append(in, g)
		}

		out, err := m.Eval(in...)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %d", i)
		}

		for j, name := range c.outMaps[i] {
			if err := ld.Set(name, out[j]); err != nil {
				return nil, err
			}
		}
	}

	return ld, nil
}

// Inverse implements Invertible. The inverse runs the inverted stages in
// reverse order, with the input and output maps swapped and reversed.
func (c *SerialComposite) Inverse() (Model, error) {
	inverses := make([]Model, len(c.models))

	for i, m := range c.models {
		inv, err := Inverse(m)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %d", i)
		}

		inverses[len(c.models)-1-i] = inv
	}

	var inMaps, outMaps [][]string
	if c.inMaps != nil {
		inMaps = reverseMaps(c.outMaps)
		outMaps = reverseMaps(c.inMaps)
	}

	return NewSerial(inverses, inMaps, outMaps)
}

func copyNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)

	return out
}

func copyMaps(maps [][]string) [][]string {
	out := make([][]string, len(maps))
	for i, names := range maps {
		out[i] = copyNames(names)
	}

	return out
}

func reverseMaps(maps [][]string) [][]string {
	out := make([][]string, len(maps))
	for i, names := range maps {
		out[len(maps)-1-i] = copyNames(names)
	}

	return out
}

var (
	_ Model            = (*SerialComposite)(nil)
	_ Invertible       = (*SerialComposite)(nil)
	_ LabeledEvaluator = (*SerialComposite)(nil)
)
