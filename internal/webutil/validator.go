// internal/webutil/validator.go
package webutil

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is the shared validator instance.
var Validator *validator.Validate

func init() {
	Validator = validator.New()

	// Report JSON field names in validation errors, not Go struct names.
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
