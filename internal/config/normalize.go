package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment overrides applied after the config file is read.
const (
	EnvFFmpeg   = "SHARECUT_FFMPEG"
	EnvFFprobe  = "SHARECUT_FFPROBE"
	EnvLogLevel = "SHARECUT_LOG_LEVEL"
)

func (c *Config) normalize() error {
	c.applyEnv()
	c.normalizeFFmpeg()
	c.normalizeMarkers()
	if err := c.normalizeLayout(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) applyEnv() {
	if value, ok := lookupEnv(EnvFFmpeg); ok {
		c.FFmpeg.Binary = value
	}
	if value, ok := lookupEnv(EnvFFprobe); ok {
		c.FFmpeg.FFprobeBinary = value
	}
	if value, ok := lookupEnv(EnvLogLevel); ok {
		c.Logging.Level = value
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.Binary = defaultString(c.FFmpeg.Binary, defaultFFmpegBinary)
	c.FFmpeg.FFprobeBinary = defaultString(c.FFmpeg.FFprobeBinary, defaultFFprobeBinary)
	c.FFmpeg.VideoCodec = defaultString(c.FFmpeg.VideoCodec, defaultVideoCodec)
	c.FFmpeg.AudioCodec = defaultString(c.FFmpeg.AudioCodec, defaultAudioCodec)
	c.FFmpeg.Preset = strings.TrimSpace(c.FFmpeg.Preset)
	c.FFmpeg.MovFlags = strings.TrimSpace(c.FFmpeg.MovFlags)
	if c.FFmpeg.ProbeTimeoutSeconds <= 0 {
		c.FFmpeg.ProbeTimeoutSeconds = defaultProbeTimeout
	}
}

func (c *Config) normalizeMarkers() {
	c.Markers.StartToken = defaultString(c.Markers.StartToken, defaultStartToken)
	c.Markers.StopToken = defaultString(c.Markers.StopToken, defaultStopToken)
}

func (c *Config) normalizeLayout() error {
	c.Layout.Mode = strings.ToLower(defaultString(c.Layout.Mode, defaultLayoutMode))
	c.Layout.BackgroundColor = defaultString(c.Layout.BackgroundColor, defaultBackgroundColor)
	if image := strings.TrimSpace(c.Layout.BackgroundImage); image != "" {
		expanded, err := expandPath(image)
		if err != nil {
			return fmt.Errorf("layout.background_image: %w", err)
		}
		c.Layout.BackgroundImage = expanded
	} else {
		c.Layout.BackgroundImage = ""
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(defaultString(c.Logging.Format, defaultLogFormat))
	c.Logging.Level = strings.ToLower(defaultString(c.Logging.Level, defaultLogLevel))
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}

func defaultString(value, fallback string) string {
	if value = strings.TrimSpace(value); value == "" {
		return fallback
	}
	return value
}
