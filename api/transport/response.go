package transport

import (
	"encoding/json"
	"time"
)

// ErrorBody is the wire shape of every failure response: a stable error
// field plus optional human-readable message and field-level details.
// Internal identifiers and stack traces never appear here.
type ErrorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// MarshalError renders an ErrorBody, falling back to a minimal payload if
// marshalling itself fails.
func MarshalError(errName, message string, details map[string]string) []byte {
	body, err := json.Marshal(ErrorBody{Error: errName, Message: message, Details: details})
	if err != nil {
		return []byte(`{"error":"Internal Server Error"}`)
	}
	return body
}

// SuccessBody is the {"success":true} acknowledgement used by ignore and
// delete operations.
type SuccessBody struct {
	Success bool `json:"success"`
}

// HealthBody is the liveness response.
type HealthBody struct {
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Services  interface{} `json:"services,omitempty"`
}

// ReceivedBody acknowledges webhook deliveries.
type ReceivedBody struct {
	Received bool `json:"received"`
}
