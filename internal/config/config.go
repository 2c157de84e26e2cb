// Package config provides YAML-based configuration loading for the memory game.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// MemoryConfig contains all configuration for the memory game.
type MemoryConfig struct {
	Board   BoardConfig  `yaml:"board"`
	Timing  TimingConfig `yaml:"timing"`
	Symbols []string     `yaml:"symbols" validate:"required,min=1,unique,dive,required"`
}

// BoardConfig defines the board layout.
type BoardConfig struct {
	TotalCards int `yaml:"total_cards" validate:"gte=2,even"`
	Columns    int `yaml:"columns" validate:"gt=0"`
}

// TimingConfig defines turn timing.
type TimingConfig struct {
	MismatchDelayMS int `yaml:"mismatch_delay_ms" validate:"gte=0"`
}

// configValidate checks MemoryConfig tags and reports fields by their YAML names.
var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	configValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := configValidate.RegisterValidation("even", validateEven); err != nil {
		panic(fmt.Sprintf("config: register even validation: %v", err))
	}
}

func validateEven(fl validator.FieldLevel) bool {
	return fl.Field().Int()%2 == 0
}

// MismatchDelay returns the mismatch delay as a duration.
func (c MemoryConfig) MismatchDelay() time.Duration {
	return time.Duration(c.Timing.MismatchDelayMS) * time.Millisecond
}

// Validate checks that the configuration can produce a playable board.
func (c MemoryConfig) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

// describe renders a field error using the YAML path of the field.
func describe(fe validator.FieldError) string {
	// Namespace is "MemoryConfig.board.total_cards"; drop the type name.
	_, field, _ := strings.Cut(fe.Namespace(), ".")

	switch fe.Tag() {
	case "even":
		return fmt.Sprintf("%s must be even, got %v", field, fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", field, fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s, got %v", field, fe.Param(), fe.Value())
	case "required", "min":
		return fmt.Sprintf("%s must not be empty", field)
	case "unique":
		return fmt.Sprintf("%s must not contain duplicate values", field)
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}
