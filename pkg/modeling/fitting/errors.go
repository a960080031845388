package fitting

import "github.com/pkg/errors"

var (
	// ErrDidNotConverge is returned when the solver stops without reaching a minimum.
	ErrDidNotConverge = errors.New("fit did not converge")
	// ErrNoFreeParameters is returned when every parameter is fixed or tied.
	ErrNoFreeParameters = errors.New("model has no free parameters")
	// ErrInsufficientData is returned when there are fewer observations than free parameters.
	ErrInsufficientData = errors.New("number of observations must be at least the number of free parameters")
	// ErrObservationShape is returned when the model output and the observations disagree in size.
	ErrObservationShape = errors.New("observations must match the model output shape")
	// ErrWeightShape is returned when the weights and the observations disagree in size.
	ErrWeightShape = errors.New("weights must match the observations")
	// ErrTiedNotSupported is returned by the linear fitter for models with tied parameters.
	ErrTiedNotSupported = errors.New("tied parameters require the nonlinear fitter")
	// ErrNotLinear is returned when a model does not expose a design matrix.
	ErrNotLinear = errors.New("model does not define a design matrix")
	// ErrFitterMustBeSet is returned when a batch run is started without a fitter.
	ErrFitterMustBeSet = errors.New("fitter must be set")
)
