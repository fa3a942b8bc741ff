package openweather

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed weather lookup
type ErrorKind string

const (
	// KindNotFound means the provider does not know the requested city
	KindNotFound ErrorKind = "not_found"
	// KindProviderUnavailable means the provider answered with a server-side error
	KindProviderUnavailable ErrorKind = "provider_unavailable"
	// KindInvalidResponse means bad input or an unrecognizable provider payload
	KindInvalidResponse ErrorKind = "invalid_response"
	// KindNetworkError means the request never got a provider response
	KindNetworkError ErrorKind = "network_error"
)

// LookupError is the typed failure returned by the weather client.
// It carries the originating city and, when one was received, the
// provider's HTTP status code.
type LookupError struct {
	Kind       ErrorKind
	City       string
	StatusCode int
	Err        error
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("weather lookup for %q failed: %s", e.City, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// KindOf extracts the error kind from err, or "" if err is not a LookupError
func KindOf(err error) ErrorKind {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}
