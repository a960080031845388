package modeling

// TiedExpr computes a parameter value from the full parameter vector of the
// model it is declared on.
type TiedExpr func(params []float64) float64

// Bounds is an inclusive parameter interval.
type Bounds struct {
	Min float64
	Max float64
}

// Constraints holds per-parameter fitting metadata, indexed like the
// parameter vector. A parameter is free when it is neither fixed nor tied.
type Constraints struct {
	fixed  []bool
	bounds []*Bounds
	tied   []TiedExpr
}

func newConstraints(n int) *Constraints {
	return &Constraints{
		fixed:  make([]bool, n),
		bounds: make([]*Bounds, n),
		tied:   make([]TiedExpr, n),
	}
}

// Len returns the number of parameters the constraints cover.
func (c *Constraints) Len() int {
	return len(c.fixed)
}

// Fixed reports whether parameter i is held at its current value.
func (c *Constraints) Fixed(i int) bool {
	return c.fixed[i]
}

// Bound returns the interval of parameter i, or nil when it is unbounded.
func (c *Constraints) Bound(i int) *Bounds {
	return c.bounds[i]
}

// Tied returns the expression deriving parameter i, or nil when it is not
// tied.
func (c *Constraints) Tied(i int) TiedExpr {
	return c.tied[i]
}

// Free reports whether parameter i takes part in fitting.
func (c *Constraints) Free(i int) bool {
	return !c.fixed[i] && c.tied[i] == nil
}

// Copy returns a copy of the constraints. Bounds and tied expressions are
// shared, they never change after construction.
func (c *Constraints) Copy() *Constraints {
	out := newConstraints(c.Len())
	copy(out.fixed, c.fixed)
	copy(out.bounds, c.bounds)
	copy(out.tied, c.tied)

	return out
}

// concatConstraints concatenates per-constituent constraints into the
// positional view of a composite. Tied expressions keep operating on their
// constituent's slice of the composite vector.
func concatConstraints(parts []*Constraints) *Constraints {
	total := 0
	for _, part := range parts {
		total += part.Len()
	}

	out := newConstraints(total)
	offset := 0

	for _, part := range parts {
		n := part.Len()

		for i := 0; i < n; i++ {
			out.fixed[offset+i] = part.fixed[i]
			out.bounds[offset+i] = part.bounds[i]

			if expr := part.tied[i]; expr != nil {
				start := offset
				out.tied[offset+i] = func(params []float64) float64 {
					return expr(params[start : start+n])
				}
			}
		}

		offset += n
	}

	return out
}
