// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/axljndotdev/manito-manita/apperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages are keyed by Go struct namespace
var fieldMessages = map[string]string{
	"RegisterRequest.FullName":      "Full name must be at least 2 characters",
	"RegisterRequest.Codename":      "Codename must be at least 2 characters",
	"RegisterRequest.Gender":        "Gender must be one of Male, Female, Other",
	"RegisterRequest.Wishlist":      "Please add at least one wish item",
	"UpdateProfileRequest.Codename": "Codename must be at least 2 characters",
	"UpdateProfileRequest.Wishlist": "Please add at least one wish item",
	"LoginRequest.PIN":              "Please enter your PIN",
	"DrawRequest.PIN":               "PIN is required",
	"AdminLoginRequest.AdminPin":    "Please enter admin PIN",
	"ApproveRequest.PIN":            "PIN and action are required",
	"ApproveRequest.Action":         "PIN and action are required",
}

// validateRequest runs struct tag validation and converts failures to a
// validation error with one message per field.
func validateRequest(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal("Validation failed", err)
	}

	fields := make(map[string]string, len(verrs))
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.StructNamespace()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		fields[fe.Field()] = msg
		messages = append(messages, msg)
	}

	return apperr.Validation(joinUnique(messages), fields)
}

func joinUnique(messages []string) string {
	seen := make(map[string]bool, len(messages))
	out := messages[:0]
	for _, m := range messages {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return strings.Join(out, "; ")
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
