package tensor

import "errors"

// Sentinel errors returned by boundary validation.
var (
	ErrInvalidShape  = errors.New("invalid shape")
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrLength        = errors.New("data length does not match shape")
)
