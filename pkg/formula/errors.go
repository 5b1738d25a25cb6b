package formula

import "errors"

var (
	// ErrTooManyVariables is returned by Define when the context already
	// holds MaxVariables distinct variables. The context is left unchanged.
	ErrTooManyVariables = errors.New("formula: variable capacity exceeded")

	// ErrEmptyName is returned when a variable or function name is empty.
	ErrEmptyName = errors.New("formula: name cannot be empty")

	// ErrInvalidName is returned when a variable or function name is not a
	// valid FEL identifier and so could never be referenced by an
	// expression.
	ErrInvalidName = errors.New("formula: name is not a valid identifier")

	// ErrInvalidArity is returned by RegisterFunction when the declared
	// arity bounds are inconsistent.
	ErrInvalidArity = errors.New("formula: invalid arity bounds")

	// ErrNilFunction is returned by RegisterFunction when the callback is
	// nil.
	ErrNilFunction = errors.New("formula: function callback cannot be nil")
)
