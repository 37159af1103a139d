package api

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned before any network call when no API key
// can be resolved.
var ErrNotAuthenticated = errors.New(`no API key found: run "senso login" or set SENSO_API_KEY`)

// ErrTimeout wraps requests that exceeded the client timeout.
var ErrTimeout = errors.New("request timed out")

// ErrNetwork wraps transport failures that never produced a response.
var ErrNetwork = errors.New("network error")

// APIError is a non-2xx response from the control plane. Body holds the
// parsed JSON error payload when the body was valid JSON, or the raw text
// otherwise.
type APIError struct {
	Status     int
	StatusText string
	Body       any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d %s): %s", e.Status, e.StatusText, e.Message())
}

// Message returns the server-supplied error string when the body carried
// one, falling back to the HTTP status text.
func (e *APIError) Message() string {
	if m, ok := e.Body.(map[string]any); ok {
		if msg, ok := m["error"].(string); ok && msg != "" {
			return msg
		}
	}
	return e.StatusText
}

// InvalidResponseError reports a 2xx response whose body was not valid JSON.
// An unparsable success body is a client-observable fault, not something to
// pass through silently.
type InvalidResponseError struct {
	Path string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid JSON response from %s", e.Path)
}

// FormatError maps the error taxonomy to a single-line human message.
func FormatError(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case 401:
			return `Authentication failed. Run "senso login" to update your API key.`
		case 403:
			return "Permission denied. Check your API key permissions."
		case 404:
			return "Resource not found."
		case 409:
			return "Conflict: " + apiErr.Message()
		default:
			if apiErr.Status >= 500 {
				return "Server error. Try again later."
			}
			return fmt.Sprintf("API error (%d): %s", apiErr.Status, apiErr.Message())
		}
	}
	if errors.Is(err, ErrTimeout) {
		return "Request timed out. Try again later."
	}
	if errors.Is(err, ErrNetwork) {
		return "Could not connect to the Senso API. Check your internet connection."
	}
	return err.Error()
}
