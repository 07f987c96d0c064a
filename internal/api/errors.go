package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error is a backend-reported business error: an HTTP status plus the
// structured detail message the server attached. The detail is surfaced to
// the user verbatim.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// errorDetail mirrors the backend's error envelope: {"detail": "..."}.
type errorDetail struct {
	Detail string `json:"detail"`
}

// newError builds an *Error from a non-2xx response body. Bodies that are
// not the expected envelope are used as-is.
func newError(statusCode int, body []byte) *Error {
	var d errorDetail
	if err := json.Unmarshal(body, &d); err == nil && d.Detail != "" {
		return &Error{StatusCode: statusCode, Detail: d.Detail}
	}
	return &Error{StatusCode: statusCode, Detail: strings.TrimSpace(string(body))}
}
