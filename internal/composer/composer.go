package composer

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"sharecut/internal/logging"
	"sharecut/internal/services/ffmpeg"
)

const defaultProgressInterval = 5 * time.Second

// Composer plans and runs compositions.
type Composer struct {
	prober           Prober
	runner           Runner
	logger           *slog.Logger
	ffmpegBinary     string
	progressInterval time.Duration
	newRunID         func() string
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets the composer's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		c.logger = logging.NewComponentLogger(logger, "composer")
	}
}

// WithFFmpegBinary sets the executable shown in rendered commands.
func WithFFmpegBinary(binary string) Option {
	return func(c *Composer) {
		if binary = strings.TrimSpace(binary); binary != "" {
			c.ffmpegBinary = binary
		}
	}
}

// WithProgressInterval sets the minimum gap between progress log lines.
func WithProgressInterval(interval time.Duration) Option {
	return func(c *Composer) {
		if interval > 0 {
			c.progressInterval = interval
		}
	}
}

// New constructs a Composer. runner may be nil for plan-only use.
func New(prober Prober, runner Runner, opts ...Option) *Composer {
	c := &Composer{
		prober:           prober,
		runner:           runner,
		logger:           logging.NewComponentLogger(nil, "composer"),
		ffmpegBinary:     ffmpeg.DefaultBinary,
		progressInterval: defaultProgressInterval,
		newRunID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
