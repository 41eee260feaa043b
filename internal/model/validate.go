package model

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator. It reads the same `binding` tags gin
// uses so client-side checks and the API agree, and reports JSON field names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.SetTagName("binding")
		validate.RegisterTagNameFunc(JSONFieldName)
	})
	return validate
}

// JSONFieldName returns the JSON name of a struct field for validation messages
func JSONFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// FieldErrors maps a JSON field name to a human-readable problem
type FieldErrors map[string]string

// Validate checks the inquiry form and returns one message per failing field
func (r InquiryRequest) Validate() FieldErrors {
	err := Validator().Struct(r)
	if err == nil {
		return nil
	}
	return ToFieldErrors(err)
}

// ToFieldErrors converts validator errors into FieldErrors.
// Errors of other kinds are reported under the empty field name.
func ToFieldErrors(err error) FieldErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = Describe(fe)
	}
	return out
}

// Describe turns a single validator failure into a short message
func Describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
