package api

import (
	"errors"
	"fmt"
)

// ValidationError indicates bad input that was rejected before any request
// was sent to the network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InsufficientCreditsError is raised when the backend answers 402. It is a
// distinct type so callers can route the user to a top-up flow instead of a
// generic failure message.
type InsufficientCreditsError struct {
	Detail string
}

func (e *InsufficientCreditsError) Error() string {
	if e.Detail == "" {
		return "insufficient credits"
	}
	return fmt.Sprintf("insufficient credits: %s", e.Detail)
}

// RemoteError carries any other HTTP failure. The accessor never retries;
// retry and backoff policy belongs to the caller.
type RemoteError struct {
	StatusCode int
	Detail     string
}

func (e *RemoteError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("remote error (HTTP %d)", e.StatusCode)
	}
	return fmt.Sprintf("remote error (HTTP %d): %s", e.StatusCode, e.Detail)
}

// IsInsufficientCredits reports whether err is (or wraps) an
// InsufficientCreditsError.
func IsInsufficientCredits(err error) bool {
	var ice *InsufficientCreditsError
	return errors.As(err, &ice)
}

// UserMessage converts an accessor error into a human-readable message
// suitable for surfacing at the point of use.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var ice *InsufficientCreditsError
	if errors.As(err, &ice) {
		return "You are out of credits. Top up to run another evaluation."
	}
	var re *RemoteError
	if errors.As(err, &re) {
		switch {
		case re.StatusCode == 404:
			return "That job could not be found."
		case re.StatusCode >= 500:
			return "The evaluation service is having trouble. Try again in a moment."
		default:
			return re.Error()
		}
	}
	return err.Error()
}
