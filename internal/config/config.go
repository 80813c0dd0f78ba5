package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"sharecut/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

// FFmpeg holds external tool locations and the encode policy.
type FFmpeg struct {
	Binary              string `toml:"binary" json:"binary" yaml:"binary"`
	FFprobeBinary       string `toml:"ffprobe_binary" json:"ffprobe_binary" yaml:"ffprobe_binary"`
	VideoCodec          string `toml:"video_codec" json:"video_codec" yaml:"video_codec"`
	Preset              string `toml:"preset" json:"preset" yaml:"preset"`
	CRF                 int    `toml:"crf" json:"crf" yaml:"crf"`
	AudioCodec          string `toml:"audio_codec" json:"audio_codec" yaml:"audio_codec"`
	MovFlags            string `toml:"movflags" json:"movflags" yaml:"movflags"`
	Overwrite           bool   `toml:"overwrite" json:"overwrite" yaml:"overwrite"`
	ProbeTimeoutSeconds int    `toml:"probe_timeout_seconds" json:"probe_timeout_seconds" yaml:"probe_timeout_seconds"`
}

// Markers names the chapter titles that open and close a sharing interval.
type Markers struct {
	StartToken string `toml:"start_token" json:"start_token" yaml:"start_token"`
	StopToken  string `toml:"stop_token" json:"stop_token" yaml:"stop_token"`
}

// Layout holds compositing defaults.
type Layout struct {
	Mode            string `toml:"mode" json:"mode" yaml:"mode"`
	BackgroundColor string `toml:"background_color" json:"background_color" yaml:"background_color"`
	BackgroundImage string `toml:"background_image" json:"background_image,omitempty" yaml:"background_image,omitempty"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" json:"format" yaml:"format"`
	Level  string `toml:"level" json:"level" yaml:"level"`
	File   string `toml:"file" json:"file,omitempty" yaml:"file,omitempty"`
}

// Config encapsulates all configuration values for sharecut.
type Config struct {
	FFmpeg  FFmpeg  `toml:"ffmpeg" json:"ffmpeg" yaml:"ffmpeg"`
	Markers Markers `toml:"markers" json:"markers" yaml:"markers"`
	Layout  Layout  `toml:"layout" json:"layout" yaml:"layout"`
	Logging Logging `toml:"logging" json:"logging" yaml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. It returns the
// resolved path and whether a file was found there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "resolve", "", err)
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "open", resolvedPath, err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "parse", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "normalize", "", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "validate", "", err)
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// ProbeTimeout bounds a single ffprobe invocation.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.FFmpeg.ProbeTimeoutSeconds) * time.Second
}

// Marshal renders the effective configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules (tilde, absolute) to other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
