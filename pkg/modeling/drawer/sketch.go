package drawer

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/Vanoraco/astropy/pkg/modeling"
)

const (
	inputsStage  = "inputs"
	outputsStage = "outputs"
)

// Sketch renders the data flow of a model into the drawer. A serial composite
// expands into a chain with the routed variables on the edges, a parallel
// composite fans out from the inputs and back into the outputs, and a leaf
// model renders as a single stage. Nested composites stay collapsed inside
// their stage.
func Sketch(m modeling.Model, d Drawer) error {
	if m == nil {
		return errors.Wrap(modeling.ErrModelMustBeSet, "unable to sketch")
	}

	if d == nil {
		return errors.Wrap(ErrDrawerMustBeSet, "unable to sketch")
	}

	err := d.AddStage(inputsStage, 0)
	if err != nil {
		return errors.Wrap(err, "unable to add the inputs stage")
	}

	err = d.AddStage(outputsStage, 0)
	if err != nil {
		return errors.Wrap(err, "unable to add the outputs stage")
	}

	switch c := m.(type) {
	case *modeling.SerialComposite:
		return sketchSerial(c, d)
	case *modeling.ParallelComposite:
		return sketchParallel(c, d)
	default:
		return sketchLeaf(m, d)
	}
}

func sketchSerial(c *modeling.SerialComposite, d Drawer) error {
	parent := inputsStage

	for i, sub := range c.Models() {
		name := stageName(i, sub)

		err := d.AddStage(name, len(sub.Parameters()))
		if err != nil {
			return errors.Wrapf(err, "unable to add stage %d", i)
		}

		err = d.AddFlow(parent, name, c.StageInputs(i))
		if err != nil {
			return errors.Wrapf(err, "unable to link stage %d", i)
		}

		parent = name
	}

	err := d.AddFlow(parent, outputsStage, c.Outputs())
	if err != nil {
		return errors.Wrap(err, "unable to link the outputs stage")
	}

	return nil
}

func sketchParallel(c *modeling.ParallelComposite, d Drawer) error {
	for i, sub := range c.Models() {
		name := stageName(i, sub)

		err := d.AddStage(name, len(sub.Parameters()))
		if err != nil {
			return errors.Wrapf(err, "unable to add stage %d", i)
		}

		err = d.AddFlow(inputsStage, name, c.Inputs())
		if err != nil {
			return errors.Wrapf(err, "unable to link stage %d", i)
		}

		err = d.AddFlow(name, outputsStage, sub.Outputs())
		if err != nil {
			return errors.Wrapf(err, "unable to link stage %d to the outputs", i)
		}
	}

	// The superposition carries the raw input as a term, drawn as a direct
	// inputs to outputs flow.
	err := d.AddFlow(inputsStage, outputsStage, c.Inputs())
	if err != nil {
		return errors.Wrap(err, "unable to link the passthrough")
	}

	return nil
}

func sketchLeaf(m modeling.Model, d Drawer) error {
	name := stageName(0, m)

	err := d.AddStage(name, len(m.Parameters()))
	if err != nil {
		return errors.Wrap(err, "unable to add the model stage")
	}

	err = d.AddFlow(inputsStage, name, m.Inputs())
	if err != nil {
		return errors.Wrap(err, "unable to link the inputs stage")
	}

	err = d.AddFlow(name, outputsStage, m.Outputs())
	if err != nil {
		return errors.Wrap(err, "unable to link the outputs stage")
	}

	return nil
}

func stageName(i int, m modeling.Model) string {
	return fmt.Sprintf("stage %d: %s", i, m.Kind())
}
