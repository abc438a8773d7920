// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// Database credentials fall back to the DBUSER and DBPASS environment variables.
package config
