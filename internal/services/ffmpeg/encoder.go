package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/gofrs/flock"

	"sharecut/internal/logging"
	"sharecut/internal/services"
)

// DefaultBinary is the ffmpeg executable looked up on PATH.
const DefaultBinary = "ffmpeg"

var commandContext = exec.CommandContext

// Option configures an Encoder.
type Option func(*Encoder)

// WithBinary overrides the ffmpeg executable.
func WithBinary(binary string) Option {
	return func(e *Encoder) {
		if binary = strings.TrimSpace(binary); binary != "" {
			e.binary = binary
		}
	}
}

// WithLogger sets the encoder's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Encoder) {
		e.logger = logging.NewComponentLogger(logger, "ffmpeg")
	}
}

// Encoder runs ffmpeg for composition jobs.
type Encoder struct {
	binary string
	logger *slog.Logger
}

// NewEncoder constructs an Encoder using defaults.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{binary: DefaultBinary, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Binary returns the configured ffmpeg executable.
func (e *Encoder) Binary() string {
	return e.binary
}

// Encode runs ffmpeg for job while holding <output>.lock. progress may be nil.
func (e *Encoder) Encode(ctx context.Context, job Job, progress func(Progress)) error {
	if err := validateJob(job); err != nil {
		return err
	}

	lock, err := lockOutput(job.Output)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			e.logger.Warn("failed to release output lock", logging.Error(err))
		}
		_ = os.Remove(lock.Path())
	}()

	args := append([]string{"-progress", "pipe:1", "-nostats"}, BuildArgs(job)...)
	e.logger.Debug("executing ffmpeg",
		logging.String("binary", e.binary),
		logging.String("output", job.Output),
		logging.Int("arg_count", len(args)),
	)

	cmd := commandContext(ctx, e.binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "encode", "stdout pipe", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "encode", "start ffmpeg", err)
	}

	readErr := readProgress(stdout, progress)
	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return services.Wrap(services.ErrExternalTool, "ffmpeg", "encode", "interrupted", ctxErr)
		}
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "encode",
			fmt.Sprintf("ffmpeg failed: %s", tail(stderr.String(), 8)), err)
	}
	if readErr != nil {
		e.logger.Warn("failed to read ffmpeg progress", logging.Error(readErr))
	}
	return nil
}

func validateJob(job Job) error {
	switch {
	case strings.TrimSpace(job.Camera) == "":
		return services.Wrap(services.ErrValidation, "ffmpeg", "encode", "camera input required", nil)
	case strings.TrimSpace(job.Slides) == "":
		return services.Wrap(services.ErrValidation, "ffmpeg", "encode", "slides input required", nil)
	case strings.TrimSpace(job.Output) == "":
		return services.Wrap(services.ErrValidation, "ffmpeg", "encode", "output path required", nil)
	case job.FilterGraph == "" && job.FilterScript == "":
		return services.Wrap(services.ErrValidation, "ffmpeg", "encode", "filter graph required", nil)
	}
	return nil
}

// ErrOutputBusy reports that another run holds the output lock.
var ErrOutputBusy = errors.New("output is locked by another run")

func lockOutput(output string) (*flock.Flock, error) {
	lock := flock.New(output + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "ffmpeg", "lock",
			fmt.Sprintf("create lock for %s", output), err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "ffmpeg", "lock", output, ErrOutputBusy)
	}
	return lock, nil
}

// tail keeps the last n non-empty lines of ffmpeg's stderr.
func tail(text string, n int) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	kept := make([]string, 0, n)
	for i := len(lines) - 1; i >= 0 && len(kept) < n; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			kept = append(kept, line)
		}
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	if len(kept) == 0 {
		return "no diagnostic output"
	}
	return strings.Join(kept, " | ")
}
