package config

const (
	defaultDataDir                 = "~/.local/share/waxcrate"
	defaultLogDir                  = "~/.local/share/waxcrate/logs"
	defaultCSVDir                  = "~/.local/share/waxcrate/reports"
	defaultDiscogsBaseURL          = "https://api.discogs.com"
	defaultDiscogsUserAgent        = "waxcrate/1.0"
	defaultDiscogsMaxRetries       = 3
	defaultDiscogsBackoffSeconds   = 2
	defaultDiscogsRateIntervalMS   = 1000
	defaultBackfillRequestInterval = 1000
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Discogs: Discogs{
			BaseURL:           defaultDiscogsBaseURL,
			UserAgent:         defaultDiscogsUserAgent,
			MaxRetries:        defaultDiscogsMaxRetries,
			BackoffSeconds:    defaultDiscogsBackoffSeconds,
			RateLimitInterval: defaultDiscogsRateIntervalMS,
		},
		Backfill: Backfill{
			CSVDir:          defaultCSVDir,
			RequestInterval: defaultBackfillRequestInterval,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
