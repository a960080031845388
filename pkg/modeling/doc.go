// Package modeling provides parametric mathematical models and the tools to
// compose them.
//
// A model maps named input variables to named output variables under a
// vector of parameters. The Model interface carries the mandatory
// capabilities, evaluation and parameter access, while optional capabilities
// such as analytic derivatives, inversion or a linear design matrix are
// separate interfaces that callers discover with a type assertion. This
// keeps the contract honest: a model that cannot be inverted simply does not
// have an Inverse method, and the package level Inverse helper turns the
// missing capability into ErrNotInvertible.
//
// Models compose in two ways. SerialComposite chains models so that each
// stage consumes the outputs of the previous one, either positionally or by
// routing named variables through a LabeledData container. ParallelComposite
// superimposes models over a shared input, adding every constituent's output
// to the input itself. Both composites are models again, so they nest and
// they fit like any other model.
//
// Parameters carry per-parameter constraints, declared by name when a model
// is built: a parameter can be fixed, bounded to an interval or tied to an
// expression of the other parameters. The fitting subpackage consumes this
// metadata when it decides which parameters take part in an optimisation.
package modeling
