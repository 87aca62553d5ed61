package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/msomdec/eventpass/internal/domain"
)

// registrationPayload mirrors domain.RegistrationInput with validation rules.
type registrationPayload struct {
	Name       string `json:"name" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=10,max=15"`
	CategoryID string `json:"categoryId" validate:"required"`
	Signature  string `json:"signature" validate:"required"`
	Photo      string `json:"photo" validate:"required"`
}

type categoryPayload struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=10"`
}

// fieldMessages holds the user-facing message per field and failed rule.
// A "" rule is the fallback for any rule of that field.
var fieldMessages = map[string]map[string]string{
	"name":        {"": "Name must be at least 2 characters."},
	"email":       {"": "Please enter a valid email address."},
	"phone":       {"": "Please enter a valid phone number.", "max": "Phone number must be at most 15 characters."},
	"categoryId":  {"": "Please select a category."},
	"signature":   {"": "Signature is required."},
	"photo":       {"": "Photo is required."},
	"description": {"": "Description must be at least 10 characters."},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateRegistration checks every field of in and returns all violations.
// It returns nil when the input is valid. It has no side effects.
func ValidateRegistration(in domain.RegistrationInput) domain.FieldErrors {
	return check(registrationPayload(in))
}

// ValidateCategory checks the name and description of a category.
func ValidateCategory(name, description string) domain.FieldErrors {
	return check(categoryPayload{Name: name, Description: description})
}

func check(payload any) domain.FieldErrors {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable for a non-struct payload.
		return domain.FieldErrors{"": {err.Error()}}
	}

	fe := make(domain.FieldErrors, len(verrs))
	for _, v := range verrs {
		fe.Add(v.Field(), messageFor(v.Field(), v.Tag()))
	}
	return fe
}

func messageFor(field, tag string) string {
	msgs := fieldMessages[field]
	if msg, ok := msgs[tag]; ok {
		return msg
	}
	if msg, ok := msgs[""]; ok {
		return msg
	}
	return field + " is invalid."
}
