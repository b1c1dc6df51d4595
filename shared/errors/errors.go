package errors

import (
	"errors"
	"net/http"
)

// Error kinds. Every failure that reaches a view is one of these; callers
// match with errors.Is and show only the message.
var (
	ErrAuth             = errors.New("authentication failed")
	ErrValidation       = errors.New("validation failed")
	ErrNetwork          = errors.New("request failed")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	Kind       error
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func (e *ErrorWithStatusCode) Unwrap() error {
	return e.Kind
}

func Auth(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusUnauthorized, Kind: ErrAuth}
}

func Validation(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest, Kind: ErrValidation}
}

// Network reports a failed backend call. statusCode is 0 when the request
// never got a response.
func Network(statusCode int, msg string) error {
	if statusCode == 0 {
		statusCode = http.StatusBadGateway
	}
	return &ErrorWithStatusCode{Message: msg, StatusCode: statusCode, Kind: ErrNetwork}
}

func NotAuthenticated() error {
	return &ErrorWithStatusCode{Message: "Please log in to continue", StatusCode: http.StatusUnauthorized, Kind: ErrNotAuthenticated}
}

// StatusCode returns the HTTP status carried by err, 500 otherwise.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) && e.StatusCode != 0 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// Message returns the user-facing message of err.
func Message(err error) string {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
