package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"waxcrate/internal/config"
	"waxcrate/internal/credits"
	"waxcrate/internal/discogs"
	"waxcrate/internal/logging"
	"waxcrate/internal/lookup"
	"waxcrate/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:   cfg.Logging.Level,
			Format:  cfg.Logging.Format,
			LogFile: filepath.Join(cfg.Paths.LogDir, "waxcrate.log"),
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) openStore() (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg)
}

func (c *commandContext) categoryTable() (*credits.Table, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return credits.LoadTableFile(cfg.Categories.Path)
}

func (c *commandContext) lookupService() (*lookup.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	table, err := c.categoryTable()
	if err != nil {
		return nil, err
	}
	client, err := discogs.New(
		cfg.Discogs.Token,
		cfg.Discogs.BaseURL,
		cfg.Discogs.UserAgent,
		discogs.WithRetryPolicy(cfg.Discogs.MaxRetries, time.Duration(cfg.Discogs.BackoffSeconds)*time.Second),
		discogs.WithRateLimitInterval(time.Duration(cfg.Discogs.RateLimitInterval)*time.Millisecond),
	)
	if err != nil {
		return nil, err
	}
	return lookup.NewService(client, table, logging.WithComponent(logger, "lookup"))
}
