// Package common contains shared constants and sentinel errors used across
// CloudPix console components. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors.
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("admin privileges required")
	ErrSessionExpired = errors.New("session expired")

	// Validation errors, raised before any request is issued.
	ErrValidation = errors.New("validation error")

	// Upload pre-check errors.
	ErrNotAnImage    = errors.New("file is not an image")
	ErrFileTooLarge  = errors.New("file exceeds the maximum upload size")
	ErrQuotaExceeded = errors.New("not enough storage space")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")
)
