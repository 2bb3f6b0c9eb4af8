package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error is the backend's error envelope plus the HTTP status it arrived with.
type Error struct {
	StatusCode int      `json:"-"`
	Messages   []string `json:"messages,omitempty"`
	Exception  string   `json:"exception,omitempty"`
}

func (e *Error) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Message returns the first server-provided message, falling back to the
// exception text.
func (e *Error) Message() string {
	for _, m := range e.Messages {
		if strings.TrimSpace(m) != "" {
			return m
		}
	}
	return e.Exception
}

// IsUnauthorized reports whether the error is an authorization failure.
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

func errorFromResponse(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(body) > 0 {
		// Best effort, a non-JSON error body still yields a usable status.
		_ = json.Unmarshal(body, apiErr)
	}
	return apiErr
}
