package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// FieldError is the field-level detail returned alongside a validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// RegisterCustomValidations installs the project's custom tags on gin's validator engine.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return IsHexColor(fl.Field().String())
	})
}

// IsHexColor reports whether s is a #RRGGBB color code.
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

func FormatValidationError(err error) string {
	details := Details(err)
	if len(details) == 0 {
		return err.Error()
	}
	messages := make([]string, 0, len(details))
	for _, d := range details {
		messages = append(messages, d.Message)
	}
	return strings.Join(messages, "; ")
}

// Details extracts per-field failures; nil when err is not a validation error.
func Details(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, FieldError{
			Field:   getFieldName(fe.Field()),
			Rule:    fe.Tag(),
			Message: getFieldErrorMessage(fe),
		})
	}
	return details
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" || fe.Type().String() == "*string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", field)
	case "hexcolor6":
		return fmt.Sprintf("%s must be a valid hex color code", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Title":       "title",
		"Content":     "content",
		"CategoryID":  "category",
		"IsAnonymous": "isAnonymous",
		"Status":      "status",
		"AdminNotes":  "adminNotes",
		"IsInternal":  "isInternal",
		"Name":        "name",
		"Description": "description",
		"Color":       "color",
		"IsActive":    "isActive",
		"Page":        "page",
		"Limit":       "limit",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
