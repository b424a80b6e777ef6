package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidRole        = errors.New("invalid role for registration")
	ErrInvalidRefresh     = errors.New("invalid or revoked refresh token")
	ErrUserNotFound       = errors.New("user not found")
)
