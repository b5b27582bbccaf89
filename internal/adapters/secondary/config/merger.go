package config

import (
	"github.com/fredcamaral/deckmd/internal/domain/entities"
)

// Merger combines configurations with later sources taking precedence
type Merger struct{}

// NewMerger creates a new configuration merger
func NewMerger() *Merger {
	return &Merger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *Merger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	result := &entities.Config{}
	if configs[0] != nil {
		*result = *configs[0]
	}

	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration
func (m *Merger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := &entities.Config{}
	*result = *config

	if dir, ok := flags["output-dir"].(string); ok && dir != "" {
		result.Output.Dir = dir
	}

	if html, ok := flags["html"].(bool); ok && html {
		result.Output.HTML = true
	}

	if fm, ok := flags["frontmatter"].(bool); ok && fm {
		result.Output.FrontMatter = true
	}

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Preview.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Preview.Host = host
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Verbose = true
		result.Logging.Level = string(entities.LogLevelDebug)
	}

	return result
}

// mergeInto applies non-zero fields of overlay onto base
func (m *Merger) mergeInto(base, overlay *entities.Config) {
	if overlay.Output.Dir != "" {
		base.Output.Dir = overlay.Output.Dir
	}
	if overlay.Output.HTML {
		base.Output.HTML = true
	}
	if overlay.Output.FrontMatter {
		base.Output.FrontMatter = true
	}

	if overlay.Preview.Host != "" {
		base.Preview.Host = overlay.Preview.Host
	}
	if overlay.Preview.Port != 0 {
		base.Preview.Port = overlay.Preview.Port
	}
	if overlay.Preview.Sanitize {
		base.Preview.Sanitize = true
	}

	if overlay.Logging.Level != "" {
		base.Logging.Level = overlay.Logging.Level
	}
	if overlay.Logging.Verbose {
		base.Logging.Verbose = true
	}
	if overlay.Logging.JSONFormat {
		base.Logging.JSONFormat = true
	}
	if overlay.Logging.File != "" {
		base.Logging.File = overlay.Logging.File
	}
	if overlay.Logging.MaxSize != 0 {
		base.Logging.MaxSize = overlay.Logging.MaxSize
	}
	if overlay.Logging.MaxAge != 0 {
		base.Logging.MaxAge = overlay.Logging.MaxAge
	}
	if overlay.Logging.MaxBackups != 0 {
		base.Logging.MaxBackups = overlay.Logging.MaxBackups
	}
}
