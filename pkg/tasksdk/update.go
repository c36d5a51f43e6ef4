package tasksdk

import "encoding/json"

// MarshalJSON emits only the fields that were set, and "description":null
// when ClearDescription is true.
func (r UpdateTaskRequest) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, 4)
	if r.Title != nil {
		body["title"] = *r.Title
	}
	switch {
	case r.ClearDescription:
		body["description"] = nil
	case r.Description != nil:
		body["description"] = *r.Description
	}
	if r.Status != nil {
		body["status"] = *r.Status
	}
	if r.Priority != nil {
		body["priority"] = *r.Priority
	}
	return json.Marshal(body)
}
