package config

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/text/language"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.EvalConfig().Validate(); err != nil {
		return errors.WithHint(errors.Wrap(err, "invalid evaluator configuration"),
			"check the [evaluator] section of "+FileName)
	}

	if c.History.Limit <= 0 {
		return errors.Newf("history.limit must be > 0, got %d", c.History.Limit)
	}
	switch c.History.Backend {
	case BackendMemory:
	case BackendFile, BackendSQLite:
		if c.History.Enabled && c.History.Path == "" {
			return errors.Newf("history.path cannot be empty for the %s backend", c.History.Backend)
		}
	default:
		return errors.WithHintf(errors.Newf("unknown history.backend %q", c.History.Backend),
			"use one of %s, %s, %s", BackendMemory, BackendFile, BackendSQLite)
	}
	if c.History.Key == "" {
		return errors.New("history.key cannot be empty")
	}

	if _, err := language.Parse(c.Display.Locale); err != nil {
		return errors.WithHint(errors.Wrapf(err, "invalid display.locale %q", c.Display.Locale),
			"use a BCP 47 tag such as en or de-CH")
	}
	return nil
}
