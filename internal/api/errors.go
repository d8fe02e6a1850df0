package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// DefaultMessage is shown when a failure carries no message of its own.
const DefaultMessage = "Something went wrong. Please try again."

// ErrUnauthorized is matched by errors for 401 and 403 responses.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx response of the banking API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, http.StatusText(e.Status))
}

func (e *Error) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// errorPayload mirrors the error body of the API. Older endpoints use
// "error" instead of "message".
type errorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decodeError(status int, body []byte) *Error {
	var p errorPayload
	if err := json.Unmarshal(body, &p); err == nil {
		msg := strings.TrimSpace(p.Message)
		if msg == "" {
			msg = strings.TrimSpace(p.Error)
		}
		return &Error{Status: status, Message: msg}
	}
	return &Error{Status: status}
}

// Message extracts the user-facing text of err: the structured message of
// an API error, falling back to DefaultMessage.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return DefaultMessage
}
