package utils

import (
	"errors"
	"fmt"
)

// CustomError carries an HTTP status code alongside the response body when a
// remote endpoint answers non-OK. The endpoints return no structured
// diagnostic payload, so the message is whatever the body contained.
type CustomError struct {
	Code    int
	Message string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

func New(code int, message string) error {
	return &CustomError{
		Code:    code,
		Message: message,
	}
}

// StatusCode extracts the HTTP status from err, or 0 when err is not a
// CustomError (transport failures have no status).
func StatusCode(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return 0
}
