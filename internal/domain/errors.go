package domain

import "errors"

// Lookup errors
var (
	ErrNotFound         = errors.New("pokemon not found")
	ErrChainUnavailable = errors.New("evolution chain unavailable")
	ErrInvalidQuery     = errors.New("query is empty")
)

// Hand-off errors
var (
	ErrNoHandoff = errors.New("no pokemon handed off")
)

// Navigation errors
var (
	ErrGenerationNotFound = errors.New("generation not found")
	ErrNavigationDisabled = errors.New("navigation target out of range")
)
