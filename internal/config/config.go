package config

import (
	"time"

	"github.com/rickgao/grandexchange-data/internal/api"
)

// CollectorConfig is the root configuration for a collector instance.
type CollectorConfig struct {
	API      APIConfig      `yaml:"api"`
	Database DBConfig       `yaml:"database"`
	Output   OutputConfig   `yaml:"output"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Logging  LoggingConfig  `yaml:"logging"`
	Health   HealthConfig   `yaml:"health"`
}

// APIConfig holds item database settings.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"` // Catalogue endpoint that pages are built against
	Pages        []PageConfig  `yaml:"pages"`
	Sources      []string      `yaml:"sources"` // Full page URLs, fetched after pages
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   *int          `yaml:"max_retries"` // Unset means DefaultMaxRetries; 0 disables retries
	RetryBackoff time.Duration `yaml:"retry_backoff"`
	UserAgent    string        `yaml:"user_agent"`
}

// PageConfig selects one catalogue page.
type PageConfig struct {
	Category int    `yaml:"category"`
	Alpha    string `yaml:"alpha"` // Initial letter, or "#" for names starting with a digit
	Page     int    `yaml:"page"`
}

// SourceURLs returns every URL to fetch in one cycle, in order: pages first, then sources.
func (a *APIConfig) SourceURLs() []string {
	urls := make([]string, 0, len(a.Pages)+len(a.Sources))
	for _, p := range a.Pages {
		urls = append(urls, api.CatalogueURL(a.BaseURL, p.Category, p.Alpha, p.Page))
	}
	return append(urls, a.Sources...)
}

// Retries returns the configured retry count, or DefaultMaxRetries when unset.
func (a *APIConfig) Retries() int {
	if a.MaxRetries == nil {
		return DefaultMaxRetries
	}
	return *a.MaxRetries
}

// DBConfig holds the PostgreSQL connection for the items and prices tables.
type DBConfig struct {
	Disabled       bool          `yaml:"disabled"` // Write CSV files only
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	Name           string        `yaml:"name"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	SSLMode        string        `yaml:"ssl_mode"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// OutputConfig holds CSV sink settings.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// ScheduleConfig holds the collection schedule.
type ScheduleConfig struct {
	Cron string `yaml:"cron"` // Standard 5-field spec or descriptor such as "@daily"
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level     string `yaml:"level"`      // debug, info, warn, error
	Format    string `yaml:"format"`     // text or json
	ErrorFile string `yaml:"error_file"` // Optional file receiving WARN and above
}

// HealthConfig holds the health endpoint settings.
type HealthConfig struct {
	Port int `yaml:"port"`
}
