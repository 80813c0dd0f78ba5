package composer

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"sharecut/internal/filtergraph"
	"sharecut/internal/layout"
	"sharecut/internal/logging"
	"sharecut/internal/media/ffprobe"
	"sharecut/internal/services"
	"sharecut/internal/services/ffmpeg"
	"sharecut/internal/timeline"
)

// Plan is everything derived for one composition, ready to encode.
type Plan struct {
	RunID            string              `json:"run_id" yaml:"run_id"`
	Camera           string              `json:"camera" yaml:"camera"`
	Slides           string              `json:"slides" yaml:"slides"`
	Output           string              `json:"output" yaml:"output"`
	CameraSize       layout.Dimensions   `json:"camera_size" yaml:"camera_size"`
	CameraHasAudio   bool                `json:"camera_has_audio" yaml:"camera_has_audio"`
	Trim             timeline.TrimWindow `json:"trim" yaml:"trim"`
	Markers          []timeline.Marker   `json:"markers" yaml:"markers"`
	Source           timeline.Timeline   `json:"source" yaml:"source"`
	Timeline         timeline.Timeline   `json:"timeline" yaml:"timeline"`
	Predicates       timeline.Predicates `json:"predicates" yaml:"predicates"`
	Geometry         layout.Geometry     `json:"geometry" yaml:"geometry"`
	Background       layout.Background   `json:"background" yaml:"background"`
	Graph            filtergraph.Graph   `json:"graph" yaml:"graph"`
	Job              ffmpeg.Job          `json:"-" yaml:"-"`
	Args             []string            `json:"args" yaml:"args"`
	Command          string              `json:"command" yaml:"command"`
	// ExpectedDuration is the output length in seconds, or 0 when unknown.
	ExpectedDuration float64             `json:"expected_duration" yaml:"expected_duration"`
	Warnings         []string            `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Plan derives the full composition for req without running ffmpeg.
func (c *Composer) Plan(ctx context.Context, req Request) (*Plan, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	mode, _ := layout.ParseMode(string(req.Mode))
	background := req.Background.Normalized()

	runID := c.newRunID()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, c.logger)

	camera, slides, err := c.probe(ctx, req)
	if err != nil {
		return nil, err
	}

	stream, ok := camera.FirstVideoStream()
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, "compose", "probe",
			fmt.Sprintf("camera recording %s has no video stream", req.Camera), nil)
	}
	if slides.VideoStreamCount() == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "compose", "probe",
			fmt.Sprintf("slides recording %s has no video stream", req.Slides), nil)
	}
	cameraSize := layout.Dimensions{Width: stream.Width, Height: stream.Height}
	logger.Info("camera resolution", logging.String("size", cameraSize.String()))

	markers, err := timeline.MarkersFromChapters(slides.Chapters)
	if err != nil {
		return nil, err
	}
	source, err := timeline.Extract(markers, req.Tokens)
	if err != nil {
		return nil, err
	}
	if source.Empty() {
		logger.Info("no sharing markers found",
			logging.Args(logging.DecisionAttrs("intervals", "speaker_only", fmt.Sprintf("%d chapters matched no sharing interval", len(markers)))...)...)
	} else {
		logger.Info("sharing intervals extracted", logging.Int("count", len(source.Intervals)))
	}

	var warnings []string
	clipped := source.Clip(req.Trim)
	if dropped := len(source.Intervals) - len(clipped.Intervals); dropped > 0 {
		logger.Info("intervals outside trim window dropped",
			logging.Args(logging.DecisionAttrs("trim", "dropped", fmt.Sprintf("%d of %d intervals fall outside the window", dropped, len(source.Intervals)))...)...)
	}
	if !source.Empty() && clipped.Empty() {
		msg := "trim window excludes every sharing interval; output will show the speaker only"
		warnings = append(warnings, msg)
		logging.WarnWithContext(logger, msg, "trim_window_empty",
			logging.String(logging.FieldErrorKind, "config"),
			logging.String(logging.FieldErrorHint, "widen --start/--end to include a sharing interval"),
			logging.String(logging.FieldImpact, "combined view never shown"),
		)
	}
	predicates := timeline.Partition(clipped)

	geometry, err := layout.Plan(layout.Request{Mode: mode, Camera: cameraSize, Output: req.Dimensions})
	if err != nil {
		return nil, err
	}
	logger.Info("layout planned",
		logging.Args(append(logging.DecisionAttrs("layout", string(mode), mode.Description()),
			logging.String("title", mode.Title()),
			logging.String("canvas", geometry.Canvas.String()))...)...)
	if geometry.ScaleSpeaker {
		logger.Info("camera will be scaled",
			logging.Args(logging.DecisionAttrs("scaling", "scale_speaker",
				fmt.Sprintf("camera %s differs from output %s", cameraSize, geometry.Canvas))...)...)
	}

	graph, err := filtergraph.Compile(filtergraph.Spec{
		Geometry:   geometry,
		Background: background,
		Predicates: predicates,
	})
	if err != nil {
		return nil, err
	}

	job := ffmpeg.Job{
		Camera:      req.Camera,
		Slides:      req.Slides,
		Output:      req.Output,
		Trim:        req.Trim,
		FilterGraph: graph.String(),
		OutputLabel: graph.Output,
		HasAudio:    camera.AudioStreamCount() > 0,
		Policy:      req.Policy,
	}
	if req.GraphOut != "" {
		job.FilterScript = req.GraphOut
	}
	args := ffmpeg.BuildArgs(job)

	return &Plan{
		RunID:            runID,
		Camera:           req.Camera,
		Slides:           req.Slides,
		Output:           req.Output,
		CameraSize:       cameraSize,
		CameraHasAudio:   job.HasAudio,
		Trim:             req.Trim,
		Markers:          markers,
		Source:           source,
		Timeline:         clipped,
		Predicates:       predicates,
		Geometry:         geometry,
		Background:       background,
		Graph:            graph,
		Job:              job,
		Args:             args,
		Command:          ffmpeg.CommandLine(c.ffmpegBinary, args),
		ExpectedDuration: expectedDuration(camera.DurationSeconds(), req.Trim),
		Warnings:         warnings,
	}, nil
}

// probe inspects both inputs concurrently, once each.
func (c *Composer) probe(ctx context.Context, req Request) (ffprobe.Result, ffprobe.Result, error) {
	if c.prober == nil {
		return ffprobe.Result{}, ffprobe.Result{}, services.Wrap(services.ErrConfiguration, "compose", "probe", "no prober configured", nil)
	}
	var camera, slides ffprobe.Result
	g, gctx := errgroup.WithContext(services.WithStage(ctx, "probe"))
	g.Go(func() error {
		var err error
		camera, err = c.prober.Inspect(gctx, req.Camera)
		return err
	})
	g.Go(func() error {
		var err error
		slides, err = c.prober.Inspect(gctx, req.Slides)
		return err
	})
	if err := g.Wait(); err != nil {
		return ffprobe.Result{}, ffprobe.Result{}, err
	}
	return camera, slides, nil
}

// expectedDuration is the length of the trimmed output given the camera's
// duration, or 0 when the duration is unknown.
func expectedDuration(source float64, trim timeline.TrimWindow) float64 {
	if source <= 0 {
		return 0
	}
	end := math.Min(source, trim.EndSeconds())
	if end <= trim.Start {
		return 0
	}
	return end - trim.Start
}
