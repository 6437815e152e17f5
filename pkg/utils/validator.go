package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// GetValidationErrors flattens validator output into one message suitable
// for the {message} error body.
func GetValidationErrors(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		field := jsonFieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs[i] = fmt.Sprintf("%s is required", field)
		default:
			msgs[i] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return strings.Join(msgs, "; ")
}

// jsonFieldName lowercases the first rune so messages name the JSON field
// rather than the Go struct field.
func jsonFieldName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
