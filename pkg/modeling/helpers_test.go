package modeling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// brokenModel fails every evaluation.
type brokenModel struct {
	*modeling.Params
}

func newBrokenModel(t *testing.T) *brokenModel {
	t.Helper()

	p, err := modeling.NewParams("broken", nil, nil)
	require.NoError(t, err)

	return &brokenModel{Params: p}
}

func (b *brokenModel) Inputs() []string {
	return []string{"x"}
}

func (b *brokenModel) Outputs() []string {
	return []string{"y"}
}

func (b *brokenModel) Eval(in ...*grid.Grid) ([]*grid.Grid, error) {
	return nil, assert.AnError
}

func (b *brokenModel) Copy() modeling.Model {
	return &brokenModel{Params: b.Params.Clone()}
}

var _ modeling.Model = (*brokenModel)(nil)
