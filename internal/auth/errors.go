package auth

import "errors"

var (
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrAccountExists      = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrBadToken           = errors.New("invalid token")
)
