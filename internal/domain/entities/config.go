package entities

import (
	"fmt"
	"strings"
)

// Config is the tool-level configuration loaded from TOML files and
// merged with command-line flags. The conversion engine itself takes no
// configuration; these settings only shape the CLI and preview surfaces.
type Config struct {
	Output  OutputConfig  `toml:"output"`
	Preview PreviewConfig `toml:"preview"`
	Logging LoggingConfig `toml:"logging"`
}

// OutputConfig controls where and how converted documents are written
type OutputConfig struct {
	// Dir overrides the destination directory; empty means next to the
	// source file
	Dir string `toml:"dir"`

	// HTML also writes a derived HTML view next to the markdown output
	HTML bool `toml:"html"`

	// FrontMatter prepends YAML front matter with deck metadata
	FrontMatter bool `toml:"front_matter"`
}

// PreviewConfig contains preview server settings
type PreviewConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Sanitize bool   `toml:"sanitize"`
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `toml:"level"`       // debug, info, warn, error
	Verbose    bool   `toml:"verbose"`     // Enable verbose logging
	JSONFormat bool   `toml:"json_format"` // Output logs in JSON format
	File       string `toml:"file"`        // Log to file (optional)
	MaxSize    int    `toml:"max_size"`    // Maximum log file size in MB
	MaxAge     int    `toml:"max_age"`     // Maximum age in days
	MaxBackups int    `toml:"max_backups"` // Maximum number of backup files
}

// Validate ensures the configuration has valid values
func (c *Config) Validate() error {
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return fmt.Errorf("invalid preview port: %d", c.Preview.Port)
	}

	if strings.ContainsAny(c.Preview.Host, " !") {
		return fmt.Errorf("invalid preview host: %s", c.Preview.Host)
	}

	return c.Logging.Validate()
}

// Validate checks the logging settings
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		// Valid levels
	case "":
		// Empty is okay, will use default
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}

	if l.MaxSize < 0 || l.MaxAge < 0 || l.MaxBackups < 0 {
		return fmt.Errorf("log file settings must be non-negative")
	}

	return nil
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}
