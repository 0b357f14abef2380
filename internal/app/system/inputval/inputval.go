// Package inputval validates form input structs using `validate` and
// `label` struct tags, producing user-facing messages.
//
// Supported rules (comma-separated in the `validate` tag):
//   - required           non-empty after trimming (strings)
//   - max=N              at most N characters (strings)
//   - email              must pass IsValidEmail
//
// The `label` tag supplies the display name used in messages, e.g.
//
//	type input struct {
//	    Name string `validate:"required,max=50" label:"Obstacle name"`
//	}
package inputval

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Result collects validation error messages in field order.
type Result struct {
	Errors []string
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first error message, or "" when there are none.
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0]
}

// All returns every message joined with spaces.
func (r *Result) All() string {
	return strings.Join(r.Errors, " ")
}

// Validate runs the tag rules over every exported string field of input.
// input must be a struct (or pointer to one); other kinds yield an empty
// Result rather than a panic.
func Validate(input any) *Result {
	res := &Result{}

	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return res
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		rules := field.Tag.Get("validate")
		if rules == "" || !field.IsExported() || field.Type.Kind() != reflect.String {
			continue
		}

		label := field.Tag.Get("label")
		if label == "" {
			label = field.Name
		}
		value := strings.TrimSpace(v.Field(i).String())

		for _, rule := range strings.Split(rules, ",") {
			rule = strings.TrimSpace(rule)
			switch {
			case rule == "required":
				if value == "" {
					res.Errors = append(res.Errors, label+" is required.")
				}
			case strings.HasPrefix(rule, "max="):
				n, err := strconv.Atoi(strings.TrimPrefix(rule, "max="))
				if err == nil && len([]rune(value)) > n {
					res.Errors = append(res.Errors,
						fmt.Sprintf("%s must be at most %d characters.", label, n))
				}
			case rule == "email":
				// Empty values are the "required" rule's concern.
				if value != "" && !IsValidEmail(value) {
					res.Errors = append(res.Errors, "A valid email address is required.")
				}
			}
		}
	}
	return res
}
