package tasksdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is any non-success response from the task service.
type APIError struct {
	StatusCode int

	// Message is the "error" field of the body, empty for validation errors.
	Message string

	// Fields is set for 400 validation responses.
	Fields []FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		msgs := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			msgs[i] = f.Path + ": " + f.Msg
		}
		return fmt.Sprintf("tasksdk: HTTP %d: %s", e.StatusCode, strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("tasksdk: HTTP %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsUnauthorized reports a missing token or bad credentials (401).
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

// IsForbidden reports an invalid or expired token (403).
func IsForbidden(err error) bool { return hasStatus(err, http.StatusForbidden) }

// IsValidation reports a 400 carrying field errors.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest && len(apiErr.Fields) > 0
}

func hasStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// parseErrorResponse builds an APIError from a failed response body.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var valErr ValidationErrorResponse
	if err := json.Unmarshal(body, &valErr); err == nil && len(valErr.Errors) > 0 {
		apiErr.Fields = valErr.Errors
		return apiErr
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		apiErr.Message = errResp.Error
		return apiErr
	}

	apiErr.Message = http.StatusText(resp.StatusCode)
	return apiErr
}
