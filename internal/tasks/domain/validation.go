package domain

import (
	"fmt"
	"strings"
)

// Where a rejected value came from.
const (
	LocationBody  = "body"
	LocationQuery = "query"
)

// FieldError describes one rejected input field. The JSON shape matches the
// items the browser client already renders.
type FieldError struct {
	Type     string `json:"type"`
	Value    any    `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// NewFieldError builds a FieldError of type "field".
func NewFieldError(location, path string, value any, msg string) FieldError {
	return FieldError{Type: "field", Value: value, Msg: msg, Path: path, Location: location}
}

// ValidationErrors is returned when input fails validation. It is never
// empty when returned as an error.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Path, fe.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Err returns v as an error, or nil when there is nothing to report.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
