package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":   "{field} is required",
	"gt":         "{field} must be greater than {param}",
	"gte":        "{field} must be greater than or equal to {param}",
	"lte":        "{field} must be less than or equal to {param}",
	"oneof":      "{field} must be one of {param}",
	"max":        "{field} must be at most {param} long",
	"min":        "{field} must be at least {param} long",
	"uuid":       "{field} must be a valid UUID",
	"gtfield":    "{field} must be after {param}",
	"percentage": "{field} must be a percentage between 0 and 100",
}

// message renders every field error, in declaration order, as one sentence per field.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	sentences := make([]string, 0, len(fieldErrors))

	for _, fieldErr := range fieldErrors {
		template, ok := messages[fieldErr.Tag()]
		if !ok {
			sentences = append(sentences, fieldErr.Error())

			continue
		}

		sentences = append(sentences, strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template))
	}

	return strings.Join(sentences, "; ")
}
