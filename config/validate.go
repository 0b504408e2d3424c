package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report fields by their config-file key
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// validateStruct runs tag validation and turns the first failure into a
// readable error.
func validateStruct(cfg *Config) error {
	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "http_url":
		return fmt.Errorf("%s: must be an http or https URL, got %q", fe.Field(), fe.Value())
	case "gte":
		return fmt.Errorf("%s: cannot be negative, got %v", fe.Field(), durationValue(fe.Value()))
	default:
		return fmt.Errorf("%s: failed %q validation", fe.Field(), fe.Tag())
	}
}

func durationValue(v any) any {
	if d, ok := v.(Duration); ok {
		return d.Duration()
	}
	return v
}
