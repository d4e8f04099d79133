package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies why a call failed.
type ErrorKind int

const (
	// KindTransport: the request never produced an HTTP response.
	KindTransport ErrorKind = iota + 1
	// KindAPI: non-2xx response whose body carried a message.
	KindAPI
	// KindMalformed: the response body was missing, not JSON, or had no message.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	case KindMalformed:
		return "malformed"
	}
	return "unknown"
}

const invalidBodyMessage = "invalid response body"

// APIError is the failure half of every client call.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func fallbackMessage(statusCode int) string {
	return fmt.Sprintf("request failed with status %d", statusCode)
}

// Message returns the text to show the user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
