package models

import (
	"github.com/pkg/errors"
)

var (
	ErrNoParameters    = errors.New("at least one parameter must be provided")
	ErrDegree          = errors.New("degree is out of range")
	ErrControlPoints   = errors.New("number of control points must exceed the degree")
	ErrKernelMustBeSet = errors.New("kernel must be set")
)
