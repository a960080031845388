/*
Package fitting adjusts model parameters to observed data.

Two fitters are provided. NonLinear wraps a Levenberg-Marquardt solver and
works with any model, using the analytic Jacobian when the model provides
one and a finite difference estimate otherwise. Linear solves models that
expose a design matrix directly through QR least squares, with no iteration
involved.

Both fitters honor the constraints attached to the model parameters. Fixed
and tied parameters are excluded from the search, bounds are enforced every
time the solver writes candidate values back, and tied parameters are
recomputed from their expressions. Fitting mutates the model it is given.
BatchFit is the exception, it copies a template model per dataset so the
fits can run concurrently.
*/
package fitting
