package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidContact     = errors.New("invalid contact")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrProductNotFound    = errors.New("product not found")
)

// A ContactError lists every contact field that failed validation.
// It matches [ErrInvalidContact].
type ContactError struct {
	Problems []string
}

func (e ContactError) Error() string {
	return ErrInvalidContact.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e ContactError) Unwrap() error {
	return ErrInvalidContact
}
