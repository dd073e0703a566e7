// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

// Package validation provides struct validation using
// go-playground/validator v10 behind a thread-safe singleton, with a
// custom validator for the closed wardrobe category enum.
//
//	type IngestRequest struct {
//	    Name     string `validate:"required,max=120"`
//	    Category string `validate:"required,wardrobe_category"`
//	}
//
//	if err := validation.Struct(&req); err != nil { ... }
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/garderobe/garderobe/internal/wardrobe"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// instance returns the singleton validator, building it on first use.
// The singleton caches struct metadata, so reuse matters for latency.
func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// wardrobe_category accepts only members of the closed enum.
		_ = validate.RegisterValidation("wardrobe_category", func(fl validator.FieldLevel) bool {
			_, ok := wardrobe.ParseCategory(fl.Field().String())
			return ok
		})

		// occasion accepts the known occasion tags plus empty.
		_ = validate.RegisterValidation("occasion", func(fl validator.FieldLevel) bool {
			v := fl.Field().String()
			return v == "" || wardrobe.ParseOccasion(v) != wardrobe.OccasionAny || strings.EqualFold(v, "any")
		})
	})
	return validate
}

// Struct validates a struct using its validate tags. The returned error,
// when non-nil, lists every failing field in a stable, human-readable
// form.
func Struct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation: %w", err)
	}

	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = describe(fe)
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

// describe renders one field error without leaking reflection internals.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "wardrobe_category":
		return fmt.Sprintf("%s must be a known category", fe.Field())
	case "occasion":
		return fmt.Sprintf("%s must be a known occasion", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
