// Package common defines shared constants and sentinel errors used across
// client and server layers of Kinship. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Validation errors. Raised synchronously, before any external call.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidCode       = errors.New("invalid code")
	ErrNoActiveUser      = errors.New("no active user")
	ErrInvalidProfile    = errors.New("invalid profile")

	// Collaborator failures. Recoverable; surfaced to the UI layer.
	ErrExternalCall = errors.New("external call failed")
	ErrStorage      = errors.New("storage failed")

	// Repository / service level errors.
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
