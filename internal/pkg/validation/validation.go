// Package validation turns validator/v10 failures into field -> message maps
// keyed by the JSON field name.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/go-playground/validator/v10"
)

type FieldErrors map[string]string

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator. Field names in its errors are the
// json tag names.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates v and reports failures as an apperr.Invalid carrying the
// field map.
func Struct(v any, publicMsg string) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	return apperr.InvalidErr(publicMsg, fromValidationErrors(err, nil))
}

// FromBindError converts an error from gin's ShouldBind* into field messages.
// dst is the bound struct pointer, used to read json tags.
func FromBindError(err error, dst any) FieldErrors {
	return fromValidationErrors(err, dst)
}

func fromValidationErrors(err error, dst any) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			key := fe.Field()
			if dst != nil {
				key = fieldKey(dst, fe.StructField())
			}
			out[key] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}

	out["_"] = "Request body is invalid"
	return out
}

func fieldKey(dst any, structField string) string {
	t := reflect.TypeOf(dst)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}

	f, ok := t.FieldByName(structField)
	if !ok {
		return strings.ToLower(structField)
	}
	tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if tag == "" || tag == "-" {
		return strings.ToLower(structField)
	}
	return tag
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required", "required_if":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Must be at least " + param
	case "max":
		return "Must be at most " + param
	case "gt":
		return "Must be greater than " + param
	case "gte":
		return "Must be at least " + param
	case "oneof":
		return "Must be one of: " + param
	case "contains":
		return "Must contain " + param
	default:
		return "Invalid value"
	}
}
