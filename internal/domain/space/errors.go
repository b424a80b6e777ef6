package space

import "errors"

var (
	ErrSpaceNotFound       = errors.New("space not found")
	ErrNotSpaceOwner       = errors.New("you can only manage your own spaces")
	ErrSpaceNotActive      = errors.New("space is not active")
	ErrOnlyHostsCanList    = errors.New("only hosts can list spaces")
	ErrBlockedHourNotFound = errors.New("blocked hour not found")
	ErrBlockedHourExists   = errors.New("this hour is already blocked")
	ErrInvalidTime         = errors.New("invalid time, expected 24h HH:MM")
)
