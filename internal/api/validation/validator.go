// Package validation checks request DTOs against their validate tags and
// reports failures as problem field errors keyed by JSON path.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/blaisecz/health-journal/internal/analytics"
	"github.com/blaisecz/health-journal/pkg/problem"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

var messages = map[string]func(p string) string{
	"required": func(string) string { return "is required" },
	"min":      func(p string) string { return "must be at least " + p },
	"max":      func(p string) string { return "must be at most " + p },
	"oneof":    func(p string) string { return "must be one of: " + strings.ReplaceAll(p, " ", ", ") },
	"timezone": func(string) string { return "must be a valid IANA timezone" },
	"isodate":  func(string) string { return "must be a date in YYYY-MM-DD format" },
	"clock":    func(string) string { return "must be a time in HH:MM format" },
}

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names so errors match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "timezone", func(fl validator.FieldLevel) bool {
		_, err := time.LoadLocation(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		return analytics.ValidDate(fl.Field().String())
	})
	mustRegister(v, "clock", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate returns one field error per failed constraint, or nil.
func Validate(s any) []problem.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []problem.FieldError{{Field: "body", Message: "is invalid"}}
	}

	fieldErrors := make([]problem.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, problem.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}
	return fieldErrors
}

// fieldPath drops the root struct name: "UpsertRecordRequest.sleep.bed_time"
// becomes "sleep.bed_time".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func message(fe validator.FieldError) string {
	if m, ok := messages[fe.Tag()]; ok {
		return m(fe.Param())
	}
	return "is invalid"
}
