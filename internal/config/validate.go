package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/robfig/cron/v3"
)

// Validate checks that all required fields are set and values are valid.
func (c *CollectorConfig) Validate() error {
	if len(c.API.Pages) == 0 && len(c.API.Sources) == 0 {
		return errors.New("api.pages or api.sources must list at least one page")
	}
	if len(c.API.Pages) > 0 {
		if err := checkHTTPURL("api.base_url", c.API.BaseURL); err != nil {
			return err
		}
	}
	for i, p := range c.API.Pages {
		if p.Alpha == "" {
			return fmt.Errorf("api.pages[%d].alpha is required", i)
		}
		if p.Category < 0 {
			return fmt.Errorf("api.pages[%d].category must be >= 0", i)
		}
		if p.Page < 1 {
			return fmt.Errorf("api.pages[%d].page must be >= 1", i)
		}
	}
	for i, src := range c.API.Sources {
		if err := checkHTTPURL(fmt.Sprintf("api.sources[%d]", i), src); err != nil {
			return err
		}
	}
	if c.API.Timeout < 0 {
		return errors.New("api.timeout must be >= 0")
	}
	if c.API.MaxRetries != nil && *c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}

	if !c.Database.Disabled {
		if err := c.Database.validate("database"); err != nil {
			return err
		}
	}

	if c.Output.Dir == "" {
		return errors.New("output.dir is required")
	}

	if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
		return fmt.Errorf("schedule.cron: %w", err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	if c.Health.Port < 1 || c.Health.Port > 65535 {
		return fmt.Errorf("health.port must be between 1 and 65535, got %d", c.Health.Port)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Port < 1 || db.Port > 65535 {
		return fmt.Errorf("%s.port must be between 1 and 65535, got %d", prefix, db.Port)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required (or set %s)", prefix, EnvDBUser)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required (or set %s)", prefix, EnvDBPassword)
	}
	return nil
}

func checkHTTPURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) url, got %q", field, raw)
	}
	return nil
}
