package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }
func IsForbidden(err error) bool    { return IsStatus(err, http.StatusForbidden) }
func IsNotFound(err error) bool     { return IsStatus(err, http.StatusNotFound) }

// Detail returns the backend's explanation for err, or fallback when there is none.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// parseDetail extracts "detail" from a FastAPI error body. Validation errors carry a list of
// objects with "msg"; those are joined.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return string(envelope.Detail)
}
