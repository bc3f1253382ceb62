package broker

import (
	"encoding/json"
	"fmt"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Envelope is the uniform response shape for every operation. A success
// carries only data; an error carries only a message and a code.
type Envelope struct {
	Status    string `json:"status"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode Code   `json:"error_code,omitempty"`
}

// Success wraps an operation result.
func Success(data any) *Envelope {
	return &Envelope{
		Status: statusSuccess,
		Data:   data,
	}
}

// Failure wraps an operation failure.
func Failure(code Code, message string) *Envelope {
	return &Envelope{
		Status:    statusError,
		Error:     message,
		ErrorCode: code,
	}
}

// Failuref wraps an operation failure with a formatted message.
func Failuref(code Code, format string, args ...any) *Envelope {
	return Failure(code, fmt.Sprintf(format, args...))
}

// IsError reports whether the envelope carries a failure.
func (e *Envelope) IsError() bool {
	return e.Status == statusError
}

// JSON renders the envelope for transport.
func (e *Envelope) JSON() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("encoding response envelope: %w", err)
	}
	return string(data), nil
}
