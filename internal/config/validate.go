package config

import (
	"errors"
	"fmt"

	"sharecut/internal/layout"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateMarkers(); err != nil {
		return err
	}
	if err := c.validateLayout(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateFFmpeg() error {
	if c.FFmpeg.CRF < 0 || c.FFmpeg.CRF > 63 {
		return fmt.Errorf("ffmpeg.crf must be between 0 and 63, got %d", c.FFmpeg.CRF)
	}
	return nil
}

func (c *Config) validateMarkers() error {
	if c.Markers.StartToken == c.Markers.StopToken {
		return errors.New("markers.start_token and markers.stop_token must differ")
	}
	return nil
}

func (c *Config) validateLayout() error {
	if _, err := layout.ParseMode(c.Layout.Mode); err != nil {
		return fmt.Errorf("layout.mode: %w", err)
	}
	bg := layout.Background{Color: c.Layout.BackgroundColor, Image: c.Layout.BackgroundImage}
	if err := bg.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
