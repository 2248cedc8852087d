package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	// yyyy-mm-dd filter dates
	_ = validate.RegisterValidation("dateformat", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, err := time.Parse(DateLayout, value)
		return err == nil
	})

	// yyyy-mm index month bounds
	_ = validate.RegisterValidation("monthformat", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, err := time.Parse(MonthLayout, value)
		return err == nil
	})

	_ = validate.RegisterValidation("sinkformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", SinkFormatJSONL, SinkFormatParquet:
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "json":
			return true
		default:
			return false
		}
	})

	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			var messages []string
			for _, e := range errs {
				msg := fmt.Sprintf("validation failed for '%s': rule '%s'", e.StructNamespace(), e.Tag())
				if e.Param() != "" {
					msg += fmt.Sprintf(" (expected: %s)", e.Param())
				}
				if e.Value() != nil && e.Value() != "" {
					msg += fmt.Sprintf(", actual: '%v'", e.Value())
				}
				messages = append(messages, msg)
			}
			return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(messages, "\n  "))
		}
		return fmt.Errorf("configuration validation error: %w", err)
	}

	if err := validateDateWindow(cfg.FilterConfig); err != nil {
		return err
	}

	return nil
}

// validateDateWindow rejects an inverted [start, end] filter window.
func validateDateWindow(cfg FilterConfig) error {
	if cfg.StartDate == "" || cfg.EndDate == "" {
		return nil
	}
	start, err := time.Parse(DateLayout, cfg.StartDate)
	if err != nil {
		return nil // format errors already reported by the validator
	}
	end, err := time.Parse(DateLayout, cfg.EndDate)
	if err != nil {
		return nil
	}
	if end.Before(start) {
		return fmt.Errorf("configuration validation failed: end_date '%s' is before start_date '%s'", cfg.EndDate, cfg.StartDate)
	}
	return nil
}
