package user

import "errors"

var (
	ErrNotFound      = errors.New("user not found")
	ErrEmailTaken    = errors.New("email is already registered")
	ErrInvalidRole   = errors.New("invalid user role")
	ErrInvalidUserID = errors.New("invalid user id")
)
