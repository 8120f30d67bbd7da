package dto

import "errors"

// ErrValidation marks request bodies rejected before they reach the store.
var ErrValidation = errors.New("validation failed")

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}
