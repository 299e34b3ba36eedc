package config

const (
	defaultDataDir      = "~/.local/share/antenna"
	defaultLogDir       = "~/.local/share/antenna/logs"
	defaultSourcesFile  = "~/.config/antenna/sources.txt"
	defaultTemplateFile = "~/.config/antenna/template.txt"
	defaultMappingFile  = "~/.config/antenna/mapping.txt"
	defaultOutputFile   = "~/.local/share/antenna/live.txt"
	defaultFetchTimeout = 10
	defaultUserAgent    = "antenna/dev"
	defaultSourceURL    = "https://live.fanmingming.com/tv/m3u/ipv6.m3u"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:      defaultDataDir,
			LogDir:       defaultLogDir,
			SourcesFile:  defaultSourcesFile,
			TemplateFile: defaultTemplateFile,
			MappingFile:  defaultMappingFile,
			OutputFile:   defaultOutputFile,
		},
		Fetch: Fetch{
			Timeout:       defaultFetchTimeout,
			UserAgent:     defaultUserAgent,
			DefaultSource: defaultSourceURL,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
