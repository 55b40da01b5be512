// Package validation wraps go-playground/validator with user-facing error
// messages.  Request types declare their rules in `validate` struct tags
// and their display name in a `label` tag; the first failing rule is
// reported as a single sentence such as "Price must be positive".
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error is returned by Struct when a value breaks one of its rules.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Validator is safe for concurrent use and should be shared.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator that names fields by their `label` tag, falling
// back to the json name and then the Go name.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if l := f.Tag.Get("label"); l != "" {
			return l
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
		return f.Name
	})
	return &Validator{v: v}
}

// Struct validates s and returns an *Error describing the first failure.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		return &Error{Field: fe.Namespace(), Message: message(fe)}
	}
	return &Error{Message: "Invalid input"}
}

// Validate lets Validator act as an echo.Validator.
func (v *Validator) Validate(i any) error { return v.Struct(i) }

var oneofParam = regexp.MustCompile(`'[^']*'|\S+`)

func message(fe validator.FieldError) string {
	name := fe.Field()
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be at least %s characters", name, param)
		case reflect.Slice, reflect.Array, reflect.Map:
			if param == "1" {
				return name + " must not be empty"
			}
			return fmt.Sprintf("%s must contain at least %s items", name, param)
		}
		return fmt.Sprintf("%s must be at least %s", name, param)
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be at most %s characters", name, param)
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("%s must contain at most %s items", name, param)
		}
		return fmt.Sprintf("%s must be at most %s", name, param)
	case "gt":
		if param == "0" {
			return name + " must be positive"
		}
		return fmt.Sprintf("%s must be greater than %s", name, param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", name, param)
	case "oneof":
		opts := oneofParam.FindAllString(param, -1)
		for i, o := range opts {
			opts[i] = strings.Trim(o, "'")
		}
		return fmt.Sprintf("%s must be one of: %s", name, strings.Join(opts, ", "))
	case "url", "http_url":
		return name + " must be a valid URL"
	case "email":
		return "Invalid email address"
	case "datetime":
		return name + " must be a date in YYYY-MM-DD format"
	case "numeric":
		return name + " must contain only digits"
	}
	return name + " is invalid"
}
