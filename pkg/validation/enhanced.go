// Package validation wires go-playground/validator with traversal-specific
// rules.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Validate is the main validator instance
	Validate *validator.Validate

	stepLabelPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	elementIDPattern = regexp.MustCompile(`^[a-zA-Z0-9:._-]+$`)
)

func init() {
	Validate = validator.New()

	Validate.RegisterValidation("step_label", validateStepLabel)
	Validate.RegisterValidation("element_id", validateElementID)
	Validate.RegisterValidation("engine_name", validateEngineName)

	// Use JSON tags for field names in error messages.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// ValidateStruct validates a struct through the shared validator instance
// and, when present, the struct's own Validate method.
func ValidateStruct(s interface{}) error {
	if err := Validate.Struct(s); err != nil {
		return formatValidationErrors(err)
	}
	if v, ok := s.(Validator); ok {
		return v.Validate()
	}
	return nil
}

// formatValidationErrors converts validator errors to our custom format
func formatValidationErrors(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var errs ValidationErrors
	for _, fieldError := range validationErrors {
		errs = append(errs, ValidationError{
			Field:   fieldError.Field(),
			Value:   fieldError.Value(),
			Message: getErrorMessage(fieldError),
		})
	}
	return errs
}

// getErrorMessage returns a human-readable error message
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("minimum value/length is %s", fe.Param())
	case "max":
		return fmt.Sprintf("maximum value/length is %s", fe.Param())
	case "gte":
		return fmt.Sprintf("value must be >= %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "step_label":
		return "must be a valid step label (alphanumeric, underscore, hyphen; '~' is reserved)"
	case "element_id":
		return "must be a valid element identifier"
	case "engine_name":
		return "must be 'local' or 'distributed'"
	default:
		return fmt.Sprintf("validation failed: %s", fe.Tag())
	}
}

// validateStepLabel rejects empty labels and the reserved '~' namespace used
// for internal futures.
func validateStepLabel(fl validator.FieldLevel) bool {
	label := fl.Field().String()
	if label == "" || strings.HasPrefix(label, "~") {
		return false
	}
	return stepLabelPattern.MatchString(label) && len(label) <= 100
}

// validateElementID validates vertex/edge identifier format
func validateElementID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" {
		return false
	}
	return elementIDPattern.MatchString(id) && len(id) <= 256
}

// validateEngineName restricts the engine selector to the closed enum.
func validateEngineName(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "local", "distributed":
		return true
	default:
		return false
	}
}
