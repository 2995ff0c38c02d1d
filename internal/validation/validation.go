// Package validation binds request bodies into form structs and checks
// them against their `validate` tags.  Failures are reported as a 400
// errs.HTTPError carrying one FieldError per offending field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/errs"
	"github.com/iliyamo/fyyur/internal/model"
)

// Validatable is implemented by form payloads.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a field failure that cannot be expressed
// with a validator tag, such as an unparsable date.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors satisfies error so a form's Validate can
// return it directly.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their form name so clients can map errors back
	// to inputs.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return model.IsGenre(fl.Field().String())
	})
	_ = v.RegisterValidation("state", func(fl validator.FieldLevel) bool {
		return model.IsState(fl.Field().String())
	})
	return v
}

// Struct validates s using the package validator.
func Struct(s any) error {
	return validate.Struct(s)
}

// BindAndValidate binds the request into payload and validates it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		message := "invalid request body"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if m, ok := he.Message.(string); ok {
				message = m
			}
		}
		return errs.NewBadRequestError(message, nil)
	}
	if err := payload.Validate(); err != nil {
		return errs.NewBadRequestError("Validation failed", extractValidationError(err))
	}
	return nil
}

func extractValidationError(err error) []errs.FieldError {
	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		out := make([]errs.FieldError, 0, len(custom))
		for _, e := range custom {
			out = append(out, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return out
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	out := make([]errs.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "min":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must contain at least %s item(s)", fe.Param())
			}
		case "max":
			msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
		case "url":
			msg = "must be a valid URL"
		case "gt":
			msg = fmt.Sprintf("must be greater than %s", fe.Param())
		case "genre":
			msg = fmt.Sprintf("%q is not a known genre", fe.Value())
		case "state":
			msg = fmt.Sprintf("%q is not a known state", fe.Value())
		default:
			msg = fe.Tag()
			if fe.Param() != "" {
				msg += ":" + fe.Param()
			}
		}
		out = append(out, errs.FieldError{Field: fieldName(fe), Error: msg})
	}
	return out
}

// fieldName strips the struct prefix from the namespace so dived
// elements read as "genres[1]".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
