package config

import (
	"os"
	"time"

	"github.com/rickgao/grandexchange-data/internal/api"
)

// Default values for optional configuration fields.
const (
	DefaultAPITimeout     = 30 * time.Second
	DefaultMaxRetries     = 3
	DefaultRetryBackoff   = 1 * time.Second
	DefaultDBHost         = "localhost"
	DefaultDBPort         = 5432
	DefaultDBName         = "grandexchange"
	DefaultDBSSLMode      = "prefer"
	DefaultConnectTimeout = 10 * time.Second
	DefaultOutputDir      = "."
	DefaultCron           = "@daily"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultHealthPort     = 8080
)

// Environment variables holding database credentials.
const (
	EnvDBUser     = "DBUSER"
	EnvDBPassword = "DBPASS"
)

func (c *CollectorConfig) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = api.DefaultCatalogueBase
	}
	if len(c.API.Pages) == 0 && len(c.API.Sources) == 0 {
		c.API.Pages = []PageConfig{{Category: 0, Alpha: "a", Page: 1}}
	}
	for i := range c.API.Pages {
		if c.API.Pages[i].Page == 0 {
			c.API.Pages[i].Page = 1
		}
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == nil {
		retries := DefaultMaxRetries
		c.API.MaxRetries = &retries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}

	// Database defaults
	applyDBDefaults(&c.Database)

	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}

	if c.Schedule.Cron == "" {
		c.Schedule.Cron = DefaultCron
	}

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	if c.Health.Port == 0 {
		c.Health.Port = DefaultHealthPort
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Host == "" {
		db.Host = DefaultDBHost
	}
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.Name == "" {
		db.Name = DefaultDBName
	}
	if db.User == "" {
		db.User = os.Getenv(EnvDBUser)
	}
	if db.Password == "" {
		db.Password = os.Getenv(EnvDBPassword)
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.ConnectTimeout == 0 {
		db.ConnectTimeout = DefaultConnectTimeout
	}
}
