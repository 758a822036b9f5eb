// Package common defines shared constants and sentinel errors used across
// client and server layers of decat. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorEmptyField   = errors.New("all four fields are required")
	ErrorInvalidEmail = errors.New("invalid email address")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired      = errors.New("token expired")
	ErrRefreshExpired    = errors.New("refresh token expired")
	ErrLoginLinkExpired  = errors.New("login link expired")
	ErrLoginLinkConsumed = errors.New("login link already used")
)
