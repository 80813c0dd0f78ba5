package composer

import (
	"context"
	"strings"

	"sharecut/internal/logging"
	"sharecut/internal/services"
	"sharecut/internal/timeline"
)

// IntervalReport lists the sharing intervals found in one slides recording.
type IntervalReport struct {
	Slides   string              `json:"slides" yaml:"slides"`
	Trim     timeline.TrimWindow `json:"trim" yaml:"trim"`
	Markers  []timeline.Marker   `json:"markers" yaml:"markers"`
	Source   timeline.Timeline   `json:"source" yaml:"source"`
	Timeline timeline.Timeline   `json:"timeline" yaml:"timeline"`
}

// Intervals probes slides and extracts its sharing intervals, clipped to trim.
func (c *Composer) Intervals(ctx context.Context, slides string, tokens timeline.Tokens, trim timeline.TrimWindow) (*IntervalReport, error) {
	if strings.TrimSpace(slides) == "" {
		return nil, services.Wrap(services.ErrValidation, "intervals", "request", "slides path required", nil)
	}
	if err := trim.Validate(); err != nil {
		return nil, err
	}
	if c.prober == nil {
		return nil, services.Wrap(services.ErrConfiguration, "intervals", "probe", "no prober configured", nil)
	}

	ctx = services.WithStage(ctx, "intervals")
	result, err := c.prober.Inspect(ctx, slides)
	if err != nil {
		return nil, err
	}
	markers, err := timeline.MarkersFromChapters(result.Chapters)
	if err != nil {
		return nil, err
	}
	source, err := timeline.Extract(markers, tokens)
	if err != nil {
		return nil, err
	}
	clipped := source.Clip(trim)
	logging.WithContext(ctx, c.logger).Debug("intervals extracted",
		logging.Int("markers", len(markers)),
		logging.Int("source", len(source.Intervals)),
		logging.Int("kept", len(clipped.Intervals)),
	)
	return &IntervalReport{
		Slides:   slides,
		Trim:     trim,
		Markers:  markers,
		Source:   source,
		Timeline: clipped,
	}, nil
}
