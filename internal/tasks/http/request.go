package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/taskboard/internal/tasks/domain"
	"github.com/aussiebroadwan/taskboard/internal/tasks/service"
	"github.com/aussiebroadwan/taskboard/pkg/httpx"
	"github.com/aussiebroadwan/taskboard/pkg/tasksdk"
)

// Client facing messages.
const (
	msgInternal      = "Internal server error"
	msgInvalidJSON   = "Request body must be valid JSON"
	msgBodyTooLarge  = "Request body too large"
	msgRouteNotFound = "Not found"
	msgTaskNotFound  = "Task not found"
	msgNoFields      = "No fields to update"
	msgUserExists    = "Username or email already exists"
	msgInvalidCreds  = "Invalid credentials"
)

// readObject decodes the request body and answers 400/413 itself on
// failure. Any of keys holding an object or array is answered with a field
// validation error. ok is false when a response has already been written.
func readObject(w http.ResponseWriter, r *http.Request, keys ...string) (map[string]json.RawMessage, bool) {
	fields, err := httpx.DecodeJSONObject(w, r)
	switch {
	case err == nil:
		if errs := nonScalarFields(fields, keys); len(errs) > 0 {
			writeValidation(w, errs)
			return nil, false
		}
		return fields, true
	case errors.Is(err, httpx.ErrBodyTooLarge):
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
	default:
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidJSON)
	}
	return nil, false
}

func nonScalarFields(fields map[string]json.RawMessage, keys []string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	for _, key := range keys {
		raw := bytes.TrimSpace(fields[key])
		if len(raw) == 0 || (raw[0] != '{' && raw[0] != '[') {
			continue
		}
		var value any
		if key != "password" {
			_ = json.Unmarshal(raw, &value)
		}
		errs = append(errs, domain.NewFieldError(domain.LocationBody, key, value, "Invalid value"))
	}
	return errs
}

// optionalString reads a scalar member as text. null reads as "", and
// numbers or booleans as their literal, so validation sees what was sent.
func optionalString(fields map[string]json.RawMessage, key string) domain.Optional[string] {
	raw, ok := fields[key]
	if !ok {
		return domain.Optional[string]{}
	}
	if httpx.IsJSONNull(raw) {
		return domain.Some("")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return domain.Some(s)
	}
	return domain.Some(strings.TrimSpace(string(raw)))
}

// optionalText is optionalString where null means "no value".
func optionalText(fields map[string]json.RawMessage, key string) domain.Optional[*string] {
	raw, ok := fields[key]
	if !ok {
		return domain.Optional[*string]{}
	}
	if httpx.IsJSONNull(raw) {
		return domain.Some[*string](nil)
	}
	s := optionalString(fields, key).Value
	return domain.Some(&s)
}

func taskInput(fields map[string]json.RawMessage) service.TaskInput {
	return service.TaskInput{
		Title:       optionalString(fields, "title"),
		Description: optionalText(fields, "description"),
		Status:      optionalString(fields, "status"),
		Priority:    optionalString(fields, "priority"),
	}
}

// writeValidation answers 400 {"errors":[...]}.
func writeValidation(w http.ResponseWriter, errs domain.ValidationErrors) {
	out := make([]tasksdk.FieldError, len(errs))
	for i, fe := range errs {
		out[i] = tasksdk.FieldError{
			Type:     fe.Type,
			Value:    fe.Value,
			Msg:      fe.Msg,
			Path:     fe.Path,
			Location: fe.Location,
		}
	}
	httpx.WriteJSON(w, http.StatusBadRequest, tasksdk.ValidationErrorResponse{Errors: out})
}
