package config

import "errors"

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.Align.InsertionLayer < 0 {
		return errors.New("align.insertion_layer must not be negative")
	}
	if c.Align.BottomMargin < 0 {
		return errors.New("align.bottom_margin must not be negative")
	}
	if c.Align.SideMargin < 0 {
		return errors.New("align.side_margin must not be negative")
	}
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return errors.New("logging.format must be one of auto, console, json")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.New("logging.level must be one of debug, info, warn, error")
	}
	return nil
}
