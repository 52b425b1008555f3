// Package common defines shared constants and sentinel errors used across
// PixelForge components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Account ledger errors.
	ErrDuplicateEmail      = errors.New("an account with this email already exists")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrNegativeCredits     = errors.New("credit balance cannot be negative")

	// Authentication errors. ErrInvalidCredentials deliberately covers both
	// "no such email" and "wrong password" so callers cannot probe for
	// registered addresses.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")

	// Generation errors.
	ErrEmptyPrompt     = errors.New("prompt must not be empty")
	ErrProviderFailure = errors.New("image generation failed")

	// ErrMaintenance is returned to non-admin callers while maintenance mode
	// is enabled.
	ErrMaintenance = errors.New("service is under maintenance")
)
