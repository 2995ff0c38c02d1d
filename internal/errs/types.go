// Package errs defines the error shape returned to API clients.  Every
// handler failure that reaches the global error handler is rendered as
// an HTTPError so clients always see the same JSON structure.
package errs

import "strings"

// FieldError is a validation failure attached to one form field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType tells the client what to do next.
type ActionType string

// ActionTypeRedirect asks the client to navigate to Action.Value.
const ActionTypeRedirect ActionType = "redirect"

// Action is an optional client instruction carried by an HTTPError.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the JSON error body.  Code is machine readable
// (e.g. "BAD_REQUEST"); Message is meant for people.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
	Action  *Action      `json:"action,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
