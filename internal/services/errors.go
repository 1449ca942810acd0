package services

import "errors"

var (
	// ErrExhausted is returned by Draw once every number has been called.
	ErrExhausted = errors.New("all numbers have been drawn")
	// ErrOutOfRange is returned when a number falls outside 1..75.
	ErrOutOfRange = errors.New("number out of range")
	// ErrCorrupt marks a persisted payload that cannot be restored.
	ErrCorrupt = errors.New("corrupt game state")
	// ErrInvalidCredentials is returned by host login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
