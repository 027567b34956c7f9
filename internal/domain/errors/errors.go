package errors

import "errors"

var (
	ErrNotFound                 = errors.New("not found")
	ErrDuplicateIdentity        = errors.New("duplicate identity")
	ErrMalformedRecord          = errors.New("malformed record")
	ErrInsufficientStock        = errors.New("insufficient stock")
	ErrInvalidQuantity          = errors.New("invalid quantity")
	ErrZeroPrice                = errors.New("original price is zero")
	ErrIdentifierSpaceExhausted = errors.New("identifier space exhausted")
	ErrInvalidCredentials       = errors.New("invalid credentials")
)
