package drawer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/drawer"
	"github.com/Vanoraco/astropy/pkg/modeling/models"
)

func TestSketchSerial(t *testing.T) {
	t.Parallel()

	shift, err := models.NewShift([]float64{2})
	require.NoError(t, err)

	scale, err := models.NewScale([]float64{3})
	require.NoError(t, err)

	composite, err := modeling.NewSerial([]modeling.Model{shift, scale}, nil, nil)
	require.NoError(t, err)

	fileName := filepath.Join(t.TempDir(), "composite.dot")
	d := drawer.NewDOTDrawer(fileName)

	require.NoError(t, drawer.Sketch(composite, d))
	require.NoError(t, d.Draw())

	content, err := os.ReadFile(fileName)
	require.NoError(t, err)

	got := string(content)
	assert.Contains(t, got, "strict digraph")
	assert.Contains(t, got, `rankdir="LR"`)
	assert.Contains(t, got, `"inputs"`)
	assert.Contains(t, got, `"outputs"`)
	assert.Contains(t, got, "stage 0: shift")
	assert.Contains(t, got, "stage 1: scale")
	assert.Contains(t, got, "params: 1")
	assert.Contains(t, got, `label="x"`)
	assert.Contains(t, got, `label="y"`)
	assert.Contains(t, got, "fillcolor")
}

func TestSketchParallel(t *testing.T) {
	t.Parallel()

	line, err := models.NewPolynomial1D(1, []float64{0, 1})
	require.NoError(t, err)

	square, err := models.NewPolynomial1D(2, []float64{1, 0, 1})
	require.NoError(t, err)

	composite, err := modeling.NewParallel([]modeling.Model{line, square})
	require.NoError(t, err)

	fileName := filepath.Join(t.TempDir(), "composite.dot")
	d := drawer.NewDOTDrawer(fileName)

	require.NoError(t, drawer.Sketch(composite, d))
	require.NoError(t, d.Draw())

	content, err := os.ReadFile(fileName)
	require.NoError(t, err)

	got := string(content)
	assert.Contains(t, got, "stage 0: polynomial1d")
	assert.Contains(t, got, "stage 1: polynomial1d")
	assert.Contains(t, got, "params: 2")
	assert.Contains(t, got, "params: 3")
	assert.Contains(t, got, `"inputs" -> "outputs"`)
}

func TestSketchLeaf(t *testing.T) {
	t.Parallel()

	gauss, err := models.NewGaussian1D(4, 1, 2)
	require.NoError(t, err)

	fileName := filepath.Join(t.TempDir(), "gaussian.dot")
	d := drawer.NewDOTDrawer(fileName)

	require.NoError(t, drawer.Sketch(gauss, d))
	require.NoError(t, d.Draw())

	content, err := os.ReadFile(fileName)
	require.NoError(t, err)

	got := string(content)
	assert.Contains(t, got, "stage 0: gaussian1d")
	assert.Contains(t, got, "params: 3")
}

func TestSketchErrors(t *testing.T) {
	t.Parallel()

	shift, err := models.NewShift([]float64{1})
	require.NoError(t, err)

	d := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "unused.dot"))

	assert.ErrorIs(t, drawer.Sketch(nil, d), modeling.ErrModelMustBeSet)
	assert.ErrorIs(t, drawer.Sketch(shift, nil), drawer.ErrDrawerMustBeSet)
}

func TestSketchTwice(t *testing.T) {
	t.Parallel()

	shift, err := models.NewShift([]float64{1})
	require.NoError(t, err)

	d := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "twice.dot"))

	require.NoError(t, drawer.Sketch(shift, d))
	assert.Error(t, drawer.Sketch(shift, d))
}

func TestDOTDrawerAddFlowUnknownStage(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "out.dot"))

	require.NoError(t, d.AddStage("a", 1))
	assert.Error(t, d.AddFlow("a", "missing", []string{"x"}))
}

func TestDOTDrawerDrawCreateFileError(t *testing.T) {
	t.Parallel()

	shift, err := models.NewShift([]float64{1})
	require.NoError(t, err)

	d := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "missing", "out.dot"))

	require.NoError(t, drawer.Sketch(shift, d))
	assert.Error(t, d.Draw())
}
