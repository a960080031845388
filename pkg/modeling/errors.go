package modeling

import (
	"github.com/pkg/errors"
)

var (
	ErrModelMustBeSet   = errors.New("model must be set")
	ErrDataMustBeSet    = errors.New("data must be set")
	ErrGridMustBeSet    = errors.New("grid must be set")
	ErrNoModels         = errors.New("at least one model must be provided")
	ErrNameCount        = errors.New("number of names must match the number of grids")
	ErrDuplicateName    = errors.New("names must be unique")
	ErrMissingVariable  = errors.New("variable is not bound")
	ErrNotInvertible    = errors.New("model does not define an inverse")
	ErrArityMismatch    = errors.New("inputs and outputs must have the same arity across models")
	ErrInputCount       = errors.New("number of inputs must match the model arity")
	ErrOutputCount      = errors.New("number of outputs must match the model arity")
	ErrMapPair          = errors.New("input and output maps must be provided together")
	ErrMapCount         = errors.New("number of maps must match the number of models")
	ErrNoRouting        = errors.New("input map must be set")
	ErrUnknownParameter = errors.New("parameter name is not declared")
	ErrParameterCount   = errors.New("number of values must match the number of parameters")
	ErrExprMustBeSet    = errors.New("tied expression must be set")
	ErrBoundsOrder      = errors.New("lower bound must not exceed the upper bound")
)
