package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate returns field->tag violations, nil when the struct passes.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = err.Tag()
	}
	return errors
}

// ValidateErr wraps the violation map into a single error for callers
// that propagate instead of rendering field errors.
func ValidateErr(v interface{}) error {
	fields := Validate(v)
	if fields == nil {
		return nil
	}
	parts := make([]string, 0, len(fields))
	for field, tag := range fields {
		parts = append(parts, field+":"+tag)
	}
	return fmt.Errorf("validation failed: %s", strings.Join(parts, ", "))
}
