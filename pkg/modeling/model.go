package modeling

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// Model is the contract shared by every parametric model.
type Model interface {
	// Kind returns a short tag describing the model, "shift" or "serial"
	// for instance. It names stages in diagnostics and drawings.
	Kind() string
	// Inputs returns the declared input variable names. Their number is
	// the input arity.
	Inputs() []string
	// Outputs returns the declared output variable names.
	Outputs() []string
	// ParamNames returns the parameter names in declaration order.
	ParamNames() []string
	// Parameters returns a copy of the parameter vector.
	Parameters() []float64
	// SetParameters replaces the whole parameter vector. Constraints are
	// not applied here, they belong to the fitting layer.
	SetParameters(values []float64) error
	// Constraints returns the per-parameter constraint metadata.
	Constraints() *Constraints
	// Copy returns a deep copy of the model's parameter state.
	Copy() Model
	// Eval evaluates the model positionally. It is a pure function of the
	// inputs and the current parameters.
	Eval(in ...*grid.Grid) ([]*grid.Grid, error)
}

// Differentiable is implemented by models that can compute analytic partial
// derivatives. The returned matrix has one row per flattened output element,
// outputs concatenated in declaration order, and one column per parameter.
type Differentiable interface {
	Model
	Derivative(in ...*grid.Grid) (*mat.Dense, error)
}

// Invertible is implemented by models with an analytic inverse.
type Invertible interface {
	Model
	Inverse() (Model, error)
}

// LinearModel is implemented by models whose output is a linear function of
// the parameters. The design matrix has one row per flattened output element
// and one column per parameter, so that output equals design times
// parameters, plus the implicit terms when the model declares any.
type LinearModel interface {
	Model
	DesignMatrix(in ...*grid.Grid) (*mat.Dense, error)
}

// ImplicitTerms is implemented by linear models whose output carries a
// parameter-free term on top of the design matrix product, the identity term
// of an offset model for instance.
type ImplicitTerms interface {
	ImplicitTerms(in ...*grid.Grid) (*grid.Grid, error)
}

// LabeledEvaluator is implemented by models that route variables through a
// LabeledData container themselves, composites with routing maps in
// particular.
type LabeledEvaluator interface {
	EvalLabeled(ld *LabeledData) (*LabeledData, error)
}

// Inverse returns the analytic inverse of m, or ErrNotInvertible when m does
// not expose one.
func Inverse(m Model) (Model, error) {
	if m == nil {
		return nil, ErrModelMustBeSet
	}

	inv, ok := m.(Invertible)
	if !ok {
		return nil, errors.Wrap(ErrNotInvertible, m.Kind())
	}

	return inv.Inverse()
}

// EvalLabeled evaluates m against the variables bound in ld and binds the
// results back into ld, which is returned. Models that implement
// LabeledEvaluator route variables themselves, every other model reads from
// the container under its declared input names and writes under its
// declared output names.
func EvalLabeled(m Model, ld *LabeledData) (*LabeledData, error) {
	if m == nil {
		return nil, ErrModelMustBeSet
	}

	if ld == nil {
		return nil, ErrDataMustBeSet
	}

	if le, ok := m.(LabeledEvaluator); ok {
		return le.EvalLabeled(ld)
	}

	inputs := m.Inputs()
	in := make([]*grid.Grid, 0, len(inputs))

	for _, name := range inputs {
		g, err := ld.Get(name)
		if err != nil {
			return nil, err
		}

		in = append(in, g)
	}

	out, err := m.Eval(in...)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to evaluate %s", m.Kind())
	}

	for i, name := range m.Outputs() {
		if err := ld.Set(name, out[i]); err != nil {
			return nil, err
		}
	}

	return ld, nil
}
