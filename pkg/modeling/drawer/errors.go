package drawer

import "github.com/pkg/errors"

var (
	// ErrDrawerMustBeSet is returned when a sketch is requested without a drawer.
	ErrDrawerMustBeSet = errors.New("drawer must be set")
)
