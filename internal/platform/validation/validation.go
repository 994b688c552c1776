// Package validation registers the custom binding tags of the API on gin's validator
// and turns validator errors into client-facing messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// enumTags holds the custom tags registered through RegisterEnum.
var enumTags = map[string]bool{}

// RegisterEnum registers tag on v as a closed set of allowed string values.
func RegisterEnum(v *validator.Validate, tag string, allowed ...string) error {
	set := slices.Clone(allowed)
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return slices.Contains(set, fl.Field().String())
	})
	if err != nil {
		return fmt.Errorf("register %s: %w", tag, err)
	}
	enumTags[tag] = true
	return nil
}

// UseJSONFieldNames makes validation errors report json field names.
func UseJSONFieldNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}

// Engine returns gin's underlying validator.
func Engine() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, errors.New("gin validator engine is not go-playground/validator")
	}
	return v, nil
}

// Setup configures gin's validator with json field names and the given enum tags.
func Setup(enums map[string][]string) error {
	v, err := Engine()
	if err != nil {
		return err
	}
	UseJSONFieldNames(v)
	for tag, allowed := range enums {
		if err := RegisterEnum(v, tag, allowed...); err != nil {
			return err
		}
	}
	return nil
}

// Message converts a binding error into a message for the client.
// Only the first field error is reported.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}
	fe := verrs[0]
	field := fe.Field()
	switch {
	case fe.Tag() == "required":
		return field + " is required"
	case fe.Tag() == "email":
		return field + " must be a valid email address"
	case fe.Tag() == "min" && fe.Kind() == reflect.String:
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case fe.Tag() == "min" && (fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array):
		return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
	case fe.Tag() == "max" && (fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array):
		return fmt.Sprintf("%s must contain at most %s item(s)", field, fe.Param())
	case fe.Tag() == "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case fe.Tag() == "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case enumTags[fe.Tag()]:
		return fmt.Sprintf("%s has an invalid value: %v", field, fe.Value())
	}
	return field + " is invalid"
}
