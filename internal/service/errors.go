// Package service holds the business logic between the HTTP layer and
// the store: credential verification, registration, and CRUD over
// posts and comments with ownership checks.
package service

import "errors"

// Sentinel errors making up the failure taxonomy. The HTTP layer maps
// each to a status code; anything else becomes a generic 500.
var (
	// ErrAuthenticationFailed deliberately does not distinguish a
	// missing account from a wrong password.
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrDuplicateIdentifier  = errors.New("username or email already taken")
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
)
