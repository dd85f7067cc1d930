// Package validation normalizes raw submission records and reports
// field-level errors keyed by the record's field names.
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Record is a raw, untyped submission as decoded from a request body.
type Record map[string]any

// Errors maps a field name to a human-readable message.
type Errors map[string]string

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report fields by their json name so errors line up with Record keys
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// String returns r[key] when it is a string with non-whitespace content,
// otherwise "". Absent, null and non-string values all become "".
func (r Record) String(key string) string {
	s, ok := r[key].(string)
	if !ok || IsEmpty(s) {
		return ""
	}
	return s
}

// IsEmpty reports whether s is empty once surrounding whitespace is removed.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// check runs the struct rules on v and turns every failing field into one
// message taken from messages[field][tag], falling back to messages[field][""].
func check(v any, messages map[string]map[string]string) Errors {
	errs := Errors{}
	err := engine().Struct(v)
	if err == nil {
		return errs
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_"] = err.Error()
		return errs
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		byTag := messages[field]
		msg, ok := byTag[fe.Tag()]
		if !ok {
			msg = byTag[""]
		}
		errs[field] = msg
	}
	return errs
}
