package weather

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a fetch failed. Views key their retry affordance
// off the kind, so the set is part of the API contract.
type ErrorKind string

const (
	ErrInvalidCredentials ErrorKind = "invalid_credentials"
	ErrForbidden          ErrorKind = "forbidden"
	ErrNotFound           ErrorKind = "not_found"
	ErrRateLimited        ErrorKind = "rate_limited"
	ErrOffline            ErrorKind = "offline"
	ErrGeneric            ErrorKind = "generic"
)

// defaultMessages are shown when the collaborator gave nothing better.
var defaultMessages = map[ErrorKind]string{
	ErrInvalidCredentials: "Invalid or missing weather API key",
	ErrForbidden:          "Access to the weather API is forbidden",
	ErrNotFound:           "Location not found",
	ErrRateLimited:        "Weather API rate limit exceeded, try again later",
	ErrOffline:            "You appear to be offline",
	ErrGeneric:            "Failed to fetch weather data",
}

// FetchError is the only error type a Client returns for a failed fetch.
type FetchError struct {
	Kind    ErrorKind
	Message string
	Status  int   // HTTP status when one was received
	Err     error // underlying cause, if any
}

// NewFetchError builds a FetchError, falling back to the kind's default
// message when msg is empty.
func NewFetchError(kind ErrorKind, status int, msg string, cause error) *FetchError {
	if msg == "" {
		msg = defaultMessages[kind]
	}
	return &FetchError{Kind: kind, Message: msg, Status: status, Err: cause}
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error { return e.Err }

// KindOf reports the ErrorKind of err, or ErrGeneric when err is not a
// FetchError.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ErrGeneric
}

// MessageOf returns the human-readable message for err, suitable for display.
func MessageOf(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Message
	}
	if err == nil {
		return ""
	}
	return defaultMessages[ErrGeneric]
}
