// Package models is the catalog of concrete parametric models.
//
// Every model embeds modeling.Params for its parameter state and adds its
// own evaluation. Where a model has more to offer it implements the optional
// capabilities from the modeling package: Shift, Scale and Rotation2D invert
// analytically, the polynomials expose a design matrix for exact linear
// fitting, and most one dimensional models carry analytic derivatives for
// the nonlinear fitter. Custom1D lifts a plain Go function into a model so
// callers do not have to implement the full interface for a one-off shape.
package models
