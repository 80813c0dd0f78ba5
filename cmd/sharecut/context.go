package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"sharecut/internal/composer"
	"sharecut/internal/config"
	"sharecut/internal/layout"
	"sharecut/internal/logging"
	"sharecut/internal/services"
	"sharecut/internal/services/ffmpeg"
	"sharecut/internal/timeline"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the logger once, writing to the command's stderr.
func (c *commandContext) ensureLogger(stderr io.Writer) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		effective := *cfg
		if level := flagValue(c.logLevelFlag); level != "" {
			effective.Logging.Level = level
		}
		if format := flagValue(c.logFormatFlag); format != "" {
			effective.Logging.Format = format
		}
		logger, err := logging.NewFromConfig(&effective, stderr)
		if err != nil {
			c.loggerErr = services.Wrap(services.ErrConfiguration, "cli", "logging", "", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// newComposer wires the ffprobe prober and ffmpeg encoder from config.
func (c *commandContext) newComposer(cmd *cobra.Command) (*composer.Composer, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	prober := composer.FFprobe{Binary: cfg.FFmpeg.FFprobeBinary, Timeout: cfg.ProbeTimeout()}
	encoder := ffmpeg.NewEncoder(ffmpeg.WithBinary(cfg.FFmpeg.Binary), ffmpeg.WithLogger(logger))
	comp := composer.New(prober, encoder,
		composer.WithLogger(logger),
		composer.WithFFmpegBinary(cfg.FFmpeg.Binary),
	)
	return comp, cfg, nil
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// policyFromConfig maps the [ffmpeg] section onto an encode policy.
func policyFromConfig(cfg *config.Config) ffmpeg.Policy {
	return ffmpeg.Policy{
		VideoCodec: cfg.FFmpeg.VideoCodec,
		Preset:     cfg.FFmpeg.Preset,
		CRF:        cfg.FFmpeg.CRF,
		AudioCodec: cfg.FFmpeg.AudioCodec,
		MovFlags:   cfg.FFmpeg.MovFlags,
		Overwrite:  cfg.FFmpeg.Overwrite,
	}
}

func tokensFromConfig(cfg *config.Config) timeline.Tokens {
	return timeline.Tokens{Start: cfg.Markers.StartToken, Stop: cfg.Markers.StopToken}
}

func backgroundFromConfig(cfg *config.Config) layout.Background {
	return layout.Background{Color: cfg.Layout.BackgroundColor, Image: cfg.Layout.BackgroundImage}
}
