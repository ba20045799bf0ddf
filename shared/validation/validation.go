// Package validation wraps go-playground/validator and turns its failures
// into field-level messages.
//
// Request structs declare rules in the `validate` tag and the user-facing
// message in the `msg` tag. Field names in messages are the json names.
package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	internal_errors "github.com/itchan-dev/blogapi/shared/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	// password rule: at least one letter and one digit
	_ = v.RegisterValidation("letters_digits", func(fl validator.FieldLevel) bool {
		var letter, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLetter(r):
				letter = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return letter && digit
	})
	// byte length, for limits that count bytes rather than runes (bcrypt)
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	// rejects values that are empty after trimming
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				return true
			}
			field = field.Elem()
		}
		return strings.TrimSpace(field.String()) != ""
	})
	return v
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// Struct validates body and returns *errors.ValidationError listing every
// failed field, or nil.
func Struct(body any) error {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	seen := make(map[string]struct{})
	result := &internal_errors.ValidationError{}
	for _, fe := range fieldErrs {
		if _, ok := seen[fe.Field()]; ok {
			continue
		}
		seen[fe.Field()] = struct{}{}
		result.Fields = append(result.Fields, internal_errors.FieldError{
			Field:   fe.Field(),
			Message: MessageFor(body, fe.Field()),
		})
	}
	return result
}

// MessageFor returns the msg tag of the field whose json name is field.
func MessageFor(body any, field string) string {
	t := reflect.TypeOf(body)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t != nil && t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if jsonName(f) == field {
				if msg := f.Tag.Get("msg"); msg != "" {
					return msg
				}
				break
			}
		}
	}
	return "Invalid value for " + field
}

// Field builds a single-field validation error.
func Field(body any, field string) *internal_errors.ValidationError {
	return &internal_errors.ValidationError{Fields: []internal_errors.FieldError{{Field: field, Message: MessageFor(body, field)}}}
}
