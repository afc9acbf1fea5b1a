package errors

import "net/http"

// HTTPError is an error that already knows how it should be rendered. Code
// is the application error code, StatusCode the HTTP status (400 if unset).
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}

func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// WithStatus returns a copy carrying a different HTTP status.
func (e HTTPError) WithStatus(statusCode int) *HTTPError {
	e.StatusCode = statusCode
	return &e
}

// WithMessage returns a copy carrying a more specific message.
func (e HTTPError) WithMessage(message string) *HTTPError {
	e.Message = message
	return &e
}

func (e HTTPError) Error() string {
	return e.Message
}
