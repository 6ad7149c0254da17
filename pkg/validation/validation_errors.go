package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors turns validator errors into a compact,
// client-facing message list.
func FormatValidationErrors(err error) []string {
	var messages []string

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	for _, fe := range validationErrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "gte":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "lte":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "iso3166_1_alpha2":
			messages = append(messages, fmt.Sprintf("%s must be a two-letter country code", field))
		case "valid_phone":
			messages = append(messages, fmt.Sprintf("%s must be a valid phone number", field))
		case "strong_password":
			messages = append(messages, fmt.Sprintf("%s must contain lower and upper case letters, a digit and a symbol", field))
		case "language_level":
			messages = append(messages, fmt.Sprintf("%s must be one of basic, conversational, fluent, native-bilingual", field))
		case "eqfield":
			messages = append(messages, fmt.Sprintf("%s must match %s", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}

	if len(messages) == 0 {
		messages = append(messages, strings.TrimSpace(err.Error()))
	}
	return messages
}
