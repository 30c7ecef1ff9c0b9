// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested row does not exist, is soft-deleted,
	// or belongs to another user. The three cases are indistinguishable to the
	// caller so that row existence never leaks across tenants.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a missing, invalid or unresolvable credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken indicates a token that failed signature, decoding or expiry checks.
	ErrInvalidToken = errors.New("invalid token")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrPasswordMismatch indicates password and confirmation differ at registration.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation")
)
