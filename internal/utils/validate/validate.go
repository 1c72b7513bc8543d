// Package validate holds the process-wide go-playground validator.
// A *validator.Validate caches struct metadata, so one instance is shared
// instead of building a new one per request.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON key ("first_name") rather than the Go
	// field name ("FirstName"), since that is what clients send.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct checks every validate:"..." tag on s.
func Struct(s any) error {
	return v.Struct(s)
}

// Missing reports whether err contains at least one failed "required"
// rule, i.e. the payload lacked a necessary key.
func Missing(err error) bool {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return false
	}
	for _, e := range errs {
		if e.Tag() == "required" {
			return true
		}
	}
	return false
}
