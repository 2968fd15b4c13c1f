package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the services wraps one of these so the
// delivery layer can map it to a status code with errors.Is.
var (
	ErrUnauthorized = errors.New("authorization required")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// ErrBadRequest is the same kind as ErrInvalidInput.
var ErrBadRequest = ErrInvalidInput

// Filter compilation errors.
var (
	ErrInvalidFilter            = fmt.Errorf("%w: filter contains invalid field or operator", ErrInvalidInput)
	ErrMultipleInequalityFields = fmt.Errorf("%w: inequality filter is allowed on only one field", ErrInvalidInput)
)

// Registration and wishlist conflicts.
var (
	ErrAlreadyRegistered = fmt.Errorf("%w: you have already registered for this conference", ErrConflict)
	ErrSoldOut           = fmt.Errorf("%w: there are no seats available", ErrConflict)
	ErrAlreadyInWishlist = fmt.Errorf("%w: you have already added this session to your wishlist", ErrConflict)
	ErrNotInWishlist     = fmt.Errorf("%w: this session is not in your wishlist", ErrConflict)
)

// Invalid returns an ErrInvalidInput carrying msg.
func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
