package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration values that would otherwise fail deep
// inside a run.
func (c *Config) Validate() error {
	var problems []string

	if c.Fetch.Timeout <= 0 {
		problems = append(problems, fmt.Sprintf("fetch.timeout must be positive, got %d", c.Fetch.Timeout))
	}
	if !strings.HasPrefix(c.Fetch.DefaultSource, "http") {
		problems = append(problems, fmt.Sprintf("fetch.default_source must be an http(s) URL, got %q", c.Fetch.DefaultSource))
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level))
	}

	if strings.TrimSpace(c.Paths.OutputFile) == "" {
		problems = append(problems, "paths.output_file must be set")
	}
	if strings.TrimSpace(c.Paths.TemplateFile) == "" {
		problems = append(problems, "paths.template_file must be set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
