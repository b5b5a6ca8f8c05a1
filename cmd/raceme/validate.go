package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/raceme/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var flagNames = map[string]string{
	"Duration": "duration",
	"Corpus":   "corpus",
	"WidthPct": "width",
	"Seed":     "seed",
}

func validateConfig(cfg model.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return errors.New(strings.Join(msgs, "\n"))
}

func describeFieldError(fe validator.FieldError) string {
	name, ok := flagNames[fe.Field()]
	if !ok {
		name = strings.ToLower(fe.Field())
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("--%s must be >= %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("--%s must be <= %s", name, fe.Param())
	case "gt":
		return fmt.Sprintf("--%s must be > %s", name, fe.Param())
	case "lte":
		return fmt.Sprintf("--%s must be <= %s", name, fe.Param())
	case "file":
		return fmt.Sprintf("--%s must name an existing file", name)
	default:
		return fmt.Sprintf("--%s is invalid (%s)", name, fe.Tag())
	}
}
