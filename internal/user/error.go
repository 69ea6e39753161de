package user

import "errors"

var (
	ErrMissingSecret      = errors.New("JWT secret is not set")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionRequired    = errors.New("session id is required")
	ErrNotSignedIn        = errors.New("no user signed in")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrFailedLoadUser     = errors.New("failed to load user")
)
