package service

import "errors"

// Failure taxonomy surfaced by every service operation. The controller maps
// each sentinel to exactly one HTTP status; anything unmatched is treated as
// an internal persistence failure.
var (
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
