// Package common defines shared constants and sentinel errors used across
// client and server layers of TravelMate. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrorAlreadyExists    = errors.New("already exists")
	ErrorInvalidReference = errors.New("referenced record does not exist")
	ErrorInvalidInput     = errors.New("invalid input")

	// Service-level errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Credential primitive failures. Never surfaced to callers verbatim.
	ErrHashing      = errors.New("error hashing password")
	ErrVerification = errors.New("error comparing passwords")
)

// ClientError pairs a sentinel with the message shown to the API caller.
// errors.Is sees through it to Err.
type ClientError struct {
	Err     error
	Message string
}

func (e *ClientError) Error() string { return e.Message }

func (e *ClientError) Unwrap() error { return e.Err }

func NotFound(message string) error {
	return &ClientError{Err: ErrorNotFound, Message: message}
}

func Unauthorized(message string) error {
	return &ClientError{Err: ErrorUnauthorized, Message: message}
}

func Forbidden(message string) error {
	return &ClientError{Err: ErrorForbidden, Message: message}
}

func Conflict(message string) error {
	return &ClientError{Err: ErrorAlreadyExists, Message: message}
}

func BadRequest(message string) error {
	return &ClientError{Err: ErrorInvalidInput, Message: message}
}
