package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps JSON field names to user-facing labels
var FieldLabels = map[string]string{
	"name":    "Name",
	"email":   "Email",
	"company": "Company",
	"message": "Message",
}

// ValidationRules contains min/max values for length messages
var ValidationRules = map[string]map[string]int{
	"name":    {"min": 2, "max": 50},
	"email":   {"max": 100},
	"company": {"max": 100},
	"message": {"min": 10, "max": 1000},
}

// FormatValidationErrors converts validator.ValidationErrors to one
// user-facing message per field, keyed by JSON field name. The first failing
// rule of a field wins.
func FormatValidationErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return map[string]string{"_": err.Error()}
	}

	messages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Field()
		if _, seen := messages[field]; seen {
			continue
		}
		messages[field] = formatSingleError(e)
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	fieldName := e.Field()
	label := getFieldLabel(fieldName)

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "min", "max":
		return lengthMessage(fieldName, label, e.Tag(), e.Param())

	case "email", "contact_email":
		return "Please enter a valid email address"

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// lengthMessage describes the allowed range so min and max failures on the
// same field read the same way
func lengthMessage(fieldName, label, tag, param string) string {
	rules, ok := ValidationRules[fieldName]
	if !ok {
		if tag == "min" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s characters", label, param)
	}

	minLen, hasMin := rules["min"]
	maxLen, hasMax := rules["max"]
	switch {
	case hasMin && hasMax:
		return fmt.Sprintf("%s must be between %d and %d characters", label, minLen, maxLen)
	case hasMin:
		return fmt.Sprintf("%s must be at least %d characters", label, minLen)
	default:
		return fmt.Sprintf("%s must be at most %d characters", label, maxLen)
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	if fieldName == "" {
		return ""
	}
	return strings.ToUpper(fieldName[:1]) + fieldName[1:]
}
