package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error is returned for every failed call. Status is 0 when the server was never reached.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorBody is the server's failure envelope.
type errorBody struct {
	Error string `json:"error"`
}

// errorFromBody prefers the server's error field and falls back to "HTTP {status}".
func errorFromBody(status int, data []byte) *Error {
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && strings.TrimSpace(body.Error) != "" {
		return &Error{Status: status, Message: body.Error}
	}
	return &Error{Status: status, Message: fmt.Sprintf("HTTP %d", status)}
}
