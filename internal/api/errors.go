package api

import (
	"errors"
	"fmt"
)

// ErrEmailNotVerified is returned by Login when the backend refuses the
// credentials because the account's email is still unverified. Callers
// redirect to the verification flow on this error.
var ErrEmailNotVerified = errors.New("email not verified")

// ErrNoActiveOrder is returned when the caller has no running order.
var ErrNoActiveOrder = errors.New("no running order")

// APIError carries the backend's HTTP status and message for any other
// failed call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}
