package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/filedemand/filedemand"
)

// FieldError reports an invalid config value.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func newFieldError(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}

func objectField(i int, key, name string) string {
	if key == "" {
		return fmt.Sprintf("objects[%d].%s", i, name)
	}
	return fmt.Sprintf("objects[%d](%s).%s", i, key, name)
}

// Validate checks the settings that Open and Add would otherwise reject later.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Root) == "" {
		errs = append(errs, newFieldError("root", "must not be empty"))
	}
	if c.Cache.Expire <= 0 {
		errs = append(errs, newFieldError("cache.expire", "must be positive"))
	}
	if c.Cache.Length <= 0 {
		errs = append(errs, newFieldError("cache.length", "must be positive"))
	}
	if c.Concurrency <= 0 {
		errs = append(errs, newFieldError("concurrency", "must be positive"))
	}
	if _, err := c.FlushModes(); err != nil {
		errs = append(errs, err)
	}

	seen := make(map[string]bool, len(c.Objects))
	for i, o := range c.Objects {
		if o.Key == "" {
			errs = append(errs, newFieldError(objectField(i, "", "key"), "must not be empty"))
			continue
		}
		if seen[o.Key] {
			errs = append(errs, newFieldError(objectField(i, o.Key, "key"), "duplicate key"))
		}
		seen[o.Key] = true

		if _, err := filedemand.ParseKind(o.Type); err != nil {
			errs = append(errs, newFieldError(objectField(i, o.Key, "type"), err.Error()))
		}
		if _, err := filedemand.ParseMode(o.Mode); err != nil {
			errs = append(errs, newFieldError(objectField(i, o.Key, "mode"), err.Error()))
		}
	}

	return errors.Join(errs...)
}
