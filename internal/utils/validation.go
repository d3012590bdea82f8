package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field name to its validation messages, matching the
// wire shape {"title": ["This field may not be blank."]}.
type FieldErrors map[string][]string

// RegisterTagNameFunc makes validator report fields by their json tag so
// error keys match the request payload.
func RegisterTagNameFunc() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

func BindingErrors(err error) FieldErrors {
	fieldErrors := FieldErrors{}

	var validationErrors validator.ValidationErrors

	if !errors.As(err, &validationErrors) {
		fieldErrors["non_field_errors"] = []string{"Invalid request body."}
		return fieldErrors
	}

	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		fieldErrors[field] = append(fieldErrors[field], fieldMessage(fieldError))
	}

	return fieldErrors
}

func fieldMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field may not be blank."
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fieldError.Value())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fieldError.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fieldError.Param())
	default:
		return "This field is invalid."
	}
}

// ValidatePassword enforces the signup password policy. Each violation is
// reported separately.
func ValidatePassword(password string) []string {
	var messages []string

	if len(password) < 8 {
		messages = append(messages, "This password is too short. It must contain at least 8 characters.")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper {
		messages = append(messages, "This password must contain at least 1 uppercase letter.")
	}

	if !hasLower {
		messages = append(messages, "This password must contain at least 1 lowercase letter.")
	}

	if !hasDigit {
		messages = append(messages, "This password must contain at least 1 number.")
	}

	if !hasSpecial {
		messages = append(messages, "This password must contain at least 1 special character.")
	}

	return messages
}
