// Package common defines sentinel errors and small helpers shared by the
// storage, service and presentation layers of ManagerX. Callers should match
// the errors with errors.Is.
package common

import "errors"

var (
	// Storage errors.
	ErrNotInitialized = errors.New("database not initialized")
	ErrNotFound       = errors.New("not found")

	// Session errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrCorruptSession     = errors.New("stored session is corrupt")

	// Biometric capability errors.
	ErrBiometricUnavailable = errors.New("biometric hardware not available")
	ErrBiometricNotEnrolled = errors.New("no biometric data enrolled")
	ErrBiometricFailed      = errors.New("biometric authentication failed")

	// Validation errors.
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidRecurrence = errors.New("invalid recurrence pattern")
	ErrInvalidKey        = errors.New("invalid key")
)
