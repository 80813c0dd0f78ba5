package composer

import (
	"context"
	"time"

	"sharecut/internal/media/ffprobe"
	"sharecut/internal/services"
	"sharecut/internal/services/ffmpeg"
)

// Prober reads container metadata for one media file.
type Prober interface {
	Inspect(ctx context.Context, path string) (ffprobe.Result, error)
}

// Runner executes an encode job.
type Runner interface {
	Encode(ctx context.Context, job ffmpeg.Job, progress func(ffmpeg.Progress)) error
}

// FFprobe is the Prober backed by the ffprobe binary.
type FFprobe struct {
	Binary string
	// Timeout bounds each invocation; zero means no extra bound.
	Timeout time.Duration
}

// Inspect runs ffprobe against path.
func (p FFprobe) Inspect(ctx context.Context, path string) (ffprobe.Result, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	result, err := ffprobe.Inspect(ctx, p.Binary, path)
	if err != nil {
		return ffprobe.Result{}, services.Wrap(services.ErrExternalTool, "probe", "ffprobe", path, err)
	}
	return result, nil
}
