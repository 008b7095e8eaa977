package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// phoneRe accepts international numbers with optional +, spaces, and dashes.
var phoneRe = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for empty tags, which would be a programming error.
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(productStructLevel, Product{})
	return v
}

// productStructLevel enforces the cross-field price relationship:
// a product may never be listed above its MRP.
func productStructLevel(sl validator.StructLevel) {
	p := sl.Current().Interface().(Product)
	if p.SalesPrice > p.MRP {
		sl.ReportError(p.SalesPrice, "SalesPrice", "salesPrice", "lte_mrp", "")
	}
}

// FieldError is a single per-field validation failure, surfaced to the UI
// and never persisted.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError aggregates the per-field failures for one entity.
type ValidationError struct {
	Entity string       `json:"entity"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s (%s)", f.Field, f.Rule)
	}
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(parts, ", "))
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate checks an entity value against its declared rules. Returns a
// *ValidationError describing every failing field, or nil.
func Validate(entity string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %s: %w", entity, err)
	}
	ve := &ValidationError{Entity: entity}
	for _, fe := range fieldErrs {
		ve.Fields = append(ve.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return ve
}
