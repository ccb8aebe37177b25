package infrastructure

import (
	"bytes"
	"encoding/json"
	"fmt"

	"dineroCheck/internal/modules/dinero/application/port"
)

// StatusError is a non-success HTTP response. It matches port.ErrUpstreamRequestFailed.
type StatusError struct {
	Operation string
	Status    int
	Body      string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: %v (status %d)", e.Operation, port.ErrUpstreamRequestFailed, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	return port.ErrUpstreamRequestFailed
}

func protocolViolation(operation, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", operation, port.ErrProtocolViolation, fmt.Sprintf(format, args...))
}

// decodeJSON decodes a successful response body. Numbers stay json.Number so ids and voucher
// numbers are not rounded through float64.
func decodeJSON(body []byte, operation string) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, protocolViolation(operation, "empty response body")
	}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, protocolViolation(operation, "invalid JSON: %v", err)
	}
	return payload, nil
}
