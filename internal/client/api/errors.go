package api

import "fmt"

// APIError carries the backend's structured error envelope ({"detail": ...})
// together with the HTTP status code. Detail may be empty when the server
// returned no usable body.
type APIError struct {
	StatusCode int    `json:"-"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// ErrorMessage resolves a human-readable message for err: the server-provided
// detail when present, the given fallback otherwise. This is the single place
// implementing the "detail or generic message" rule, so the services do not
// grow divergent copies of it.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := err.(*APIError); ok && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
