package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if value, ok := os.LookupEnv("PROJECT_ROOT"); ok && strings.TrimSpace(value) != "" {
		c.Align.ProjectRoot = value
	}

	var err error
	if strings.TrimSpace(c.Align.ProjectRoot) != "" {
		if c.Align.ProjectRoot, err = expandPath(c.Align.ProjectRoot); err != nil {
			return fmt.Errorf("align.project_root: %w", err)
		}
	}

	if strings.TrimSpace(c.DimensionCache.Path) == "" {
		c.DimensionCache.Path = defaultCachePath
	}
	if c.DimensionCache.Path, err = expandPath(c.DimensionCache.Path); err != nil {
		return fmt.Errorf("dimension_cache.path: %w", err)
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
