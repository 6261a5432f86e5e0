// Package common defines shared constants and error types used across the
// storefront client layers. Callers should use errors.Is / errors.As to match
// these values rather than inspecting messages.
package common

import (
	"errors"
	"fmt"
)

var (
	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Session errors.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBackendUnavailable marks a catalog load that fell back to the
	// local backup.
	ErrBackendUnavailable = errors.New("backend connection failed, using local backup")
)

// NetworkError reports a failed round trip to the backend: the request could
// not be sent, the connection broke, or the body was not a JSON envelope.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is an envelope that parsed but carried success=false.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string { return e.Message }

// NewServerError returns a ServerError carrying msg, or fallback when the
// server did not send a message.
func NewServerError(msg, fallback string) *ServerError {
	if msg == "" {
		msg = fallback
	}
	return &ServerError{Message: msg}
}

// CacheCorruptError means a stored value exists but cannot be decoded.
type CacheCorruptError struct {
	Key string
	Err error
}

func (e *CacheCorruptError) Error() string {
	return fmt.Sprintf("corrupt cache entry %q: %v", e.Key, e.Err)
}

func (e *CacheCorruptError) Unwrap() error { return e.Err }

// ValidationError rejects user input before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsNetwork reports whether err is (or wraps) a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsServer reports whether err is (or wraps) a ServerError.
func IsServer(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
