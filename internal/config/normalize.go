package config

import "strings"

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Backfill.CSVDir, err = expandPath(c.Backfill.CSVDir); err != nil {
		return err
	}
	if strings.TrimSpace(c.Categories.Path) != "" {
		if c.Categories.Path, err = expandPath(c.Categories.Path); err != nil {
			return err
		}
	}

	c.Discogs.Token = strings.TrimSpace(c.Discogs.Token)
	c.Discogs.BaseURL = strings.TrimRight(strings.TrimSpace(c.Discogs.BaseURL), "/")
	if c.Discogs.BaseURL == "" {
		c.Discogs.BaseURL = defaultDiscogsBaseURL
	}
	if strings.TrimSpace(c.Discogs.UserAgent) == "" {
		c.Discogs.UserAgent = defaultDiscogsUserAgent
	}
	if c.Discogs.MaxRetries <= 0 {
		c.Discogs.MaxRetries = defaultDiscogsMaxRetries
	}
	if c.Discogs.BackoffSeconds <= 0 {
		c.Discogs.BackoffSeconds = defaultDiscogsBackoffSeconds
	}
	if c.Discogs.RateLimitInterval <= 0 {
		c.Discogs.RateLimitInterval = defaultDiscogsRateIntervalMS
	}
	if c.Backfill.RequestInterval <= 0 {
		c.Backfill.RequestInterval = defaultBackfillRequestInterval
	}

	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
