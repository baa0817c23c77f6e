package loans

import "errors"

var (
	// ErrInvalidInput is returned when the principal, rate or term is negative
	// or not a finite number, or when the inputs would produce a non-finite payment.
	ErrInvalidInput = errors.New("invalid loan input")

	// ErrInvalidTerm is returned when the term resolves to zero payment periods.
	ErrInvalidTerm = errors.New("invalid loan term")
)
