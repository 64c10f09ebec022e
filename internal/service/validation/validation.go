// Package validation decodes JSON payloads into request structs and reports
// every field that failed a declared constraint.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BodyField is the field name used for violations that concern the whole payload.
const BodyField = "body"

// Violation describes a single field that failed validation.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned when a payload fails validation.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	return v
}

// Decode reads a single JSON value from r into dst, which must be a pointer
// to a struct carrying `validate` tags, and validates the result.
// All violations are returned together as *Error.
func Decode(r io.Reader, dst any) error {
	var violations []Violation

	if err := json.NewDecoder(r).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return &Error{Violations: []Violation{{Field: BodyField, Message: "invalid JSON: " + err.Error()}}}
		}
		if typeErr.Field == "" {
			return &Error{Violations: []Violation{{Field: BodyField, Message: "must be " + describe(typeErr.Type)}}}
		}
		violations = append(violations, Violation{Field: typeErr.Field, Message: "must be " + describe(typeErr.Type)})
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("failed to validate payload: %w", err)
		}
		for _, fe := range fieldErrs {
			field := fieldPath(fe.Namespace())
			if reported(violations, field) {
				continue
			}
			violations = append(violations, Violation{Field: field, Message: message(fe)})
		}
	}

	if len(violations) > 0 {
		return &Error{Violations: violations}
	}

	return nil
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}

	return namespace
}

var indexPattern = regexp.MustCompile(`\[\d+\]`)

// reported tells whether field already has a type violation. Type errors
// from encoding/json carry no slice indices, so they are compared without them.
func reported(violations []Violation, field string) bool {
	bare := indexPattern.ReplaceAllString(field, "")
	for _, v := range violations {
		if v.Field == bare {
			return true
		}
	}

	return false
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " elements"
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

func describe(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "a " + t.Kind().String()
	}
}
