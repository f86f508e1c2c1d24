// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks request payload structs against their `validate` tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// checkStruct validates s and returns a field → message map, or nil
// when the struct is valid.
func checkStruct(s any) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["_"] = err.Error()
		return fields
	}
	for _, e := range verrs {
		name := jsonFieldName(e)
		fields[name] = fieldMessage(e)
	}
	return fields
}

// jsonFieldName lowercases the struct field to its JSON name. Request
// structs keep their json tags aligned with snake_case field names.
func jsonFieldName(e validator.FieldError) string {
	name := e.Field()
	var out strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out.WriteByte('_')
			}
			out.WriteRune(r - 'A' + 'a')
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// fieldMessage renders one validation failure as a human message.
func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Must be a valid email address."
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("Must be at least %s characters.", e.Param())
		}
		return fmt.Sprintf("Must be at least %s.", e.Param())
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("Must be at most %s characters.", e.Param())
		}
		return fmt.Sprintf("Must be at most %s.", e.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return "This value is invalid."
	}
}
