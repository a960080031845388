package modeling

import (
	"github.com/pkg/errors"

	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// LabeledData binds variable names to grids. Bindings keep their first-bind
// order, rebinding a name replaces the grid without changing the order.
type LabeledData struct {
	names []string
	grids map[string]*grid.Grid
}

// NewLabeledData binds grids to names pairwise.
func NewLabeledData(grids []*grid.Grid, names []string) (*LabeledData, error) {
	if len(grids) != len(names) {
		return nil, errors.Wrapf(ErrNameCount, "%d grids, %d names", len(grids), len(names))
	}

	ld := &LabeledData{
		names: make([]string, 0, len(names)),
		grids: make(map[string]*grid.Grid, len(names)),
	}

	for i, name := range names {
		if _, ok := ld.grids[name]; ok {
			return nil, errors.Wrap(ErrDuplicateName, name)
		}

		if grids[i] == nil {
			return nil, errors.Wrap(ErrGridMustBeSet, name)
		}

		ld.names = append(ld.names, name)
		ld.grids[name] = grids[i]
	}

	return ld, nil
}

// Get returns the grid bound to name.
func (ld *LabeledData) Get(name string) (*grid.Grid, error) {
	g, ok := ld.grids[name]
	if !ok {
		return nil, errors.Wrap(ErrMissingVariable, name)
	}

	return g, nil
}

// Set binds a grid to name. An existing binding is replaced in place.
func (ld *LabeledData) Set(name string, g *grid.Grid) error {
	if g == nil {
		return errors.Wrap(ErrGridMustBeSet, name)
	}

	if _, ok := ld.grids[name]; !ok {
		ld.names = append(ld.names, name)
	}

	ld.grids[name] = g

	return nil
}

// Names returns the bound names in first-bind order.
func (ld *LabeledData) Names() []string {
	out := make([]string, len(ld.names))
	copy(out, ld.names)

	return out
}

// Len returns the number of bindings.
func (ld *LabeledData) Len() int {
	return len(ld.names)
}

// Copy returns a container with the same bindings. The grids themselves are
// shared, they are immutable.
func (ld *LabeledData) Copy() *LabeledData {
	out := &LabeledData{
		names: make([]string, len(ld.names)),
		grids: make(map[string]*grid.Grid, len(ld.grids)),
	}

	copy(out.names, ld.names)

	for name, g := range ld.grids {
		out.grids[name] = g
	}

	return out
}
