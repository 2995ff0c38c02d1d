package errs

import "net/http"

func codeFor(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 error, optionally carrying field errors.
func NewBadRequestError(message string, fieldErrors []FieldError) *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusBadRequest),
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a 404 error.  When redirect is not empty the
// error tells the client which page to fall back to.
func NewNotFoundError(message, redirect string) *HTTPError {
	e := &HTTPError{
		Code:    codeFor(http.StatusNotFound),
		Message: message,
		Status:  http.StatusNotFound,
	}
	if redirect != "" {
		e.Action = &Action{Type: ActionTypeRedirect, Message: message, Value: redirect}
	}
	return e
}

// NewTooManyRequestsError creates a 429 error.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusTooManyRequests),
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 error with the generic status
// text; the underlying cause is logged, never sent.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusInternalServerError),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}
