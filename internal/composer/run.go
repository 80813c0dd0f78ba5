package composer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"sharecut/internal/fileutil"
	"sharecut/internal/logging"
	"sharecut/internal/services"
	"sharecut/internal/services/ffmpeg"
)

// Run plans req, writes the graph script when requested and, unless the
// request is a dry run, encodes the output.
func (c *Composer) Run(ctx context.Context, req Request) (*Plan, error) {
	plan, err := c.Plan(ctx, req)
	if err != nil {
		return nil, err
	}
	ctx = services.WithRunID(ctx, plan.RunID)
	logger := logging.WithContext(ctx, c.logger)

	if req.GraphOut != "" {
		if err := fileutil.WriteFileAtomic(req.GraphOut, []byte(plan.Graph.Script()), 0o644); err != nil {
			return plan, services.Wrap(services.ErrConfiguration, "compose", "graph_out",
				fmt.Sprintf("write filter script %s", req.GraphOut), err)
		}
		logger.Info("filter script written", logging.String("path", req.GraphOut))
	}

	if req.DryRun {
		logger.Info("dry run; skipping encode", logging.String("command", plan.Command))
		return plan, nil
	}
	if c.runner == nil {
		return plan, services.Wrap(services.ErrConfiguration, "compose", "encode", "no encoder configured", nil)
	}

	ctx = services.WithStage(ctx, "encode")
	logger = logging.WithContext(ctx, c.logger)
	logger.Info("encode started",
		logging.String("output", plan.Output),
		logging.String("command", plan.Command),
	)

	started := time.Now()
	throttle := rate.Sometimes{First: 1, Interval: c.progressInterval}
	err = c.runner.Encode(ctx, plan.Job, func(p ffmpeg.Progress) {
		if p.Done {
			logger.Info("encode progress", progressAttrs(p, plan.ExpectedDuration)...)
			return
		}
		throttle.Do(func() {
			logger.Info("encode progress", progressAttrs(p, plan.ExpectedDuration)...)
		})
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logging.WarnWithContext(logger, "encode interrupted", "encode_interrupted",
				logging.String(logging.FieldErrorHint, "rerun the command to start over"),
				logging.String(logging.FieldImpact, "partial output may remain at "+plan.Output),
			)
		}
		return plan, err
	}

	logger.Info("encode completed",
		logging.String("output", plan.Output),
		logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)),
	)
	return plan, nil
}

func progressAttrs(p ffmpeg.Progress, expected float64) []any {
	attrs := []logging.Attr{
		logging.Int("frame", int(p.Frame)),
		logging.Float64("out_time_seconds", p.OutTime),
	}
	if p.Speed != "" {
		attrs = append(attrs, logging.String("speed", p.Speed))
	}
	if expected > 0 {
		percent := p.OutTime / expected * 100
		if percent > 100 || p.Done {
			percent = 100
		}
		attrs = append(attrs, logging.String("percent", fmt.Sprintf("%.1f", percent)))
	}
	return logging.Args(attrs...)
}
