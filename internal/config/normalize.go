package config

import "strings"

// normalize expands and cleans every configured path and backfills empty
// fields with defaults so later code never sees a blank value.
func (c *Config) normalize() error {
	defaults := Default()

	fillString(&c.Paths.DataDir, defaults.Paths.DataDir)
	fillString(&c.Paths.LogDir, defaults.Paths.LogDir)
	fillString(&c.Paths.SourcesFile, defaults.Paths.SourcesFile)
	fillString(&c.Paths.TemplateFile, defaults.Paths.TemplateFile)
	fillString(&c.Paths.MappingFile, defaults.Paths.MappingFile)
	fillString(&c.Paths.OutputFile, defaults.Paths.OutputFile)
	fillString(&c.Fetch.UserAgent, defaults.Fetch.UserAgent)
	fillString(&c.Fetch.DefaultSource, defaults.Fetch.DefaultSource)
	fillString(&c.Logging.Format, defaults.Logging.Format)
	fillString(&c.Logging.Level, defaults.Logging.Level)

	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = defaults.Fetch.Timeout
	}

	for _, path := range []*string{
		&c.Paths.DataDir,
		&c.Paths.LogDir,
		&c.Paths.SourcesFile,
		&c.Paths.TemplateFile,
		&c.Paths.MappingFile,
		&c.Paths.OutputFile,
	} {
		expanded, err := expandPath(*path)
		if err != nil {
			return err
		}
		*path = expanded
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

func fillString(value *string, fallback string) {
	if strings.TrimSpace(*value) == "" {
		*value = fallback
	}
}
