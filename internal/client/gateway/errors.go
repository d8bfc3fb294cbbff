package gateway

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrNotSingle          = errors.New("JSON object requested, multiple (or no) rows returned")
	ErrUnauthorized       = errors.New("not authorized")
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrUserExists         = errors.New("User already registered")
	ErrNoSession          = errors.New("Auth session missing!")
	ErrUnknownTable       = errors.New("unknown table")
)
