package modeling

import (
	"github.com/pkg/errors"
)

// ConstraintOption declares a constraint on a named parameter at model
// construction time.
type ConstraintOption func(p *Params) error

// Fixed holds the named parameter at its current value during fitting.
func Fixed(name string) ConstraintOption {
	return func(p *Params) error {
		idx, err := p.index(name)
		if err != nil {
			return err
		}

		p.constraints.fixed[idx] = true

		return nil
	}
}

// Bound keeps the named parameter inside [min, max] during fitting.
func Bound(name string, min, max float64) ConstraintOption {
	return func(p *Params) error {
		idx, err := p.index(name)
		if err != nil {
			return err
		}

		if min > max {
			return errors.Wrap(ErrBoundsOrder, name)
		}

		p.constraints.bounds[idx] = &Bounds{Min: min, Max: max}

		return nil
	}
}

// Tied derives the named parameter from the other parameters. A tied
// parameter does not take part in fitting, it is recomputed from the full
// vector after every parameter update.
func Tied(name string, expr TiedExpr) ConstraintOption {
	return func(p *Params) error {
		if expr == nil {
			return errors.Wrap(ErrExprMustBeSet, name)
		}

		idx, err := p.index(name)
		if err != nil {
			return err
		}

		p.constraints.tied[idx] = expr

		return nil
	}
}

// Params is the parameter state shared by the models in this module. A model
// embeds it and adds evaluation on top, the promoted methods cover the
// parameter half of the Model interface.
type Params struct {
	kind        string
	names       []string
	values      []float64
	constraints *Constraints
}

// NewParams builds the parameter state for a model of the given kind. Names
// and values are paired positionally.
func NewParams(kind string, names []string, values []float64, opts ...ConstraintOption) (*Params, error) {
	if len(names) != len(values) {
		return nil, errors.Wrapf(ErrParameterCount, "%d names, %d values", len(names), len(values))
	}

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			return nil, errors.Wrap(ErrDuplicateName, name)
		}

		seen[name] = struct{}{}
	}

	p := &Params{
		kind:        kind,
		names:       make([]string, len(names)),
		values:      make([]float64, len(values)),
		constraints: newConstraints(len(names)),
	}

	copy(p.names, names)
	copy(p.values, values)

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, errors.Wrapf(err, "unable to apply constraint on %s", kind)
		}
	}

	return p, nil
}

// Kind returns the model tag given at construction.
func (p *Params) Kind() string {
	return p.kind
}

// ParamNames returns the parameter names in declaration order.
func (p *Params) ParamNames() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)

	return out
}

// Parameters returns a copy of the parameter vector.
func (p *Params) Parameters() []float64 {
	out := make([]float64, len(p.values))
	copy(out, p.values)

	return out
}

// NumParams returns the number of parameters.
func (p *Params) NumParams() int {
	return len(p.values)
}

// At returns the value of parameter i.
func (p *Params) At(i int) float64 {
	return p.values[i]
}

// Param returns the value of the named parameter.
func (p *Params) Param(name string) (float64, error) {
	idx, err := p.index(name)
	if err != nil {
		return 0, err
	}

	return p.values[idx], nil
}

// SetParameters replaces the whole parameter vector.
func (p *Params) SetParameters(values []float64) error {
	if len(values) != len(p.values) {
		return errors.Wrapf(ErrParameterCount, "%d values for %d parameters", len(values), len(p.values))
	}

	copy(p.values, values)

	return nil
}

// Constraints returns the per-parameter constraint metadata.
func (p *Params) Constraints() *Constraints {
	return p.constraints
}

// Clone returns a deep copy of the parameter state.
func (p *Params) Clone() *Params {
	out := &Params{
		kind:        p.kind,
		names:       make([]string, len(p.names)),
		values:      make([]float64, len(p.values)),
		constraints: p.constraints.Copy(),
	}

	copy(out.names, p.names)
	copy(out.values, p.values)

	return out
}

func (p *Params) index(name string) (int, error) {
	for i, n := range p.names {
		if n == name {
			return i, nil
		}
	}

	return 0, errors.Wrap(ErrUnknownParameter, name)
}
