// Package grid provides the numeric values that models consume and produce.
// A grid holds float64 data of rank 0 (scalar), 1 (vector) or 2 (matrix) so
// that a single evaluation API can cover all three. Real matrix work is
// delegated to gonum, the Dense and FromDense helpers bridge the two.
package grid

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var ErrShapeMismatch = errors.New("shapes must match or one operand must be a scalar")

// Grid is an immutable rank-0, rank-1 or rank-2 collection of float64
// values, stored row-major. Every operation returns a fresh grid and every
// accessor returns a copy.
type Grid struct {
	rank int
	rows int
	cols int
	data []float64
}

// Scalar wraps a single value.
func Scalar(v float64) *Grid {
	return &Grid{rank: 0, rows: 1, cols: 1, data: []float64{v}}
}

// Vector copies vs into a rank-1 grid.
func Vector(vs ...float64) *Grid {
	data := make([]float64, len(vs))
	copy(data, vs)

	return &Grid{rank: 1, rows: len(vs), cols: 1, data: data}
}

// Matrix copies data into a rank-2 grid with the given dimensions.
func Matrix(rows, cols int, data []float64) (*Grid, error) {
	if rows <= 0 || cols <= 0 || len(data) != rows*cols {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d values for %dx%d", len(data), rows, cols)
	}

	d := make([]float64, len(data))
	copy(d, data)

	return &Grid{rank: 2, rows: rows, cols: cols, data: d}, nil
}

// FromRows builds a rank-2 grid from equally sized rows.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "rows must not be empty")
	}

	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)

	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Wrapf(ErrShapeMismatch, "row %d has %d values, want %d", i, len(row), cols)
		}

		data = append(data, row...)
	}

	return &Grid{rank: 2, rows: len(rows), cols: cols, data: data}, nil
}

// FromDense copies a gonum matrix into a rank-2 grid.
func FromDense(d *mat.Dense) *Grid {
	rows, cols := d.Dims()
	data := make([]float64, rows*cols)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i*cols+j] = d.At(i, j)
		}
	}

	return &Grid{rank: 2, rows: rows, cols: cols, data: data}
}

// Indices builds the coordinate grids for an n by m matrix. The first grid
// holds the row index at every position, the second the column index.
func Indices(n, m int) (*Grid, *Grid, error) {
	if n <= 0 || m <= 0 {
		return nil, nil, errors.Wrapf(ErrShapeMismatch, "%dx%d", n, m)
	}

	ri := make([]float64, n*m)
	ci := make([]float64, n*m)

	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			ri[i*m+j] = float64(i)
			ci[i*m+j] = float64(j)
		}
	}

	return &Grid{rank: 2, rows: n, cols: m, data: ri},
		&Grid{rank: 2, rows: n, cols: m, data: ci},
		nil
}

// Rank returns 0 for a scalar, 1 for a vector and 2 for a matrix.
func (g *Grid) Rank() int { return g.rank }

// Dims returns the number of rows and columns. Scalars report 1x1 and
// vectors report nx1.
func (g *Grid) Dims() (int, int) { return g.rows, g.cols }

// Len returns the number of elements.
func (g *Grid) Len() int { return len(g.data) }

// Value returns the first element. It is the natural accessor for scalars.
func (g *Grid) Value() float64 { return g.data[0] }

// At returns the element at row i and column j.
func (g *Grid) At(i, j int) float64 { return g.data[i*g.cols+j] }

// Values returns a row-major copy of all elements.
func (g *Grid) Values() []float64 {
	out := make([]float64, len(g.data))
	copy(out, g.data)

	return out
}

// Rows returns the elements as a slice of rows.
func (g *Grid) Rows() [][]float64 {
	out := make([][]float64, g.rows)
	for i := 0; i < g.rows; i++ {
		out[i] = make([]float64, g.cols)
		copy(out[i], g.data[i*g.cols:(i+1)*g.cols])
	}

	return out
}

// Dense copies the grid into a gonum matrix.
func (g *Grid) Dense() *mat.Dense {
	return mat.NewDense(g.rows, g.cols, g.Values())
}

// Copy returns a deep copy.
func (g *Grid) Copy() *Grid {
	return &Grid{rank: g.rank, rows: g.rows, cols: g.cols, data: g.Values()}
}

// Map applies f to every element and returns the result as a new grid of the
// same shape.
func (g *Grid) Map(f func(v float64) float64) *Grid {
	out := g.Copy()
	for i, v := range out.data {
		out.data[i] = f(v)
	}

	return out
}

// Map2 applies f pairwise to a and b. The shapes must match, or one of the
// operands must be a scalar, which is then broadcast over the other.
func Map2(a, b *Grid, f func(x, y float64) float64) (*Grid, error) {
	switch {
	case a.rank == 0:
		av := a.data[0]

		return b.Map(func(v float64) float64 { return f(av, v) }), nil
	case b.rank == 0:
		bv := b.data[0]

		return a.Map(func(v float64) float64 { return f(v, bv) }), nil
	case a.rows == b.rows && a.cols == b.cols:
		out := a.Copy()
		for i := range out.data {
			out.data[i] = f(a.data[i], b.data[i])
		}

		return out, nil
	}

	return nil, errors.Wrapf(ErrShapeMismatch, "%dx%d against %dx%d", a.rows, a.cols, b.rows, b.cols)
}

// Add returns the elementwise sum of a and b.
func Add(a, b *Grid) (*Grid, error) {
	return Map2(a, b, func(x, y float64) float64 { return x + y })
}

// Outer applies f across every combination of input element and parameter.
// With a single parameter the result keeps the shape of x. With k parameters
// a scalar x becomes a vector of length k and a vector x of length n becomes
// an n by k matrix, rows indexed by input element and columns by parameter.
func Outer(x *Grid, params []float64, f func(x, p float64) float64) (*Grid, error) {
	if len(params) == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "at least one parameter is required")
	}

	if len(params) == 1 {
		p := params[0]

		return x.Map(func(v float64) float64 { return f(v, p) }), nil
	}

	switch x.rank {
	case 0:
		out := make([]float64, len(params))
		for j, p := range params {
			out[j] = f(x.data[0], p)
		}

		return Vector(out...), nil
	case 1:
		k := len(params)
		data := make([]float64, x.rows*k)

		for i, v := range x.data {
			for j, p := range params {
				data[i*k+j] = f(v, p)
			}
		}

		return &Grid{rank: 2, rows: x.rows, cols: k, data: data}, nil
	}

	return nil, errors.Wrap(ErrShapeMismatch, "parameter sets apply to scalar or vector inputs only")
}
