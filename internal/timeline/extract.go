package timeline

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"sharecut/internal/media/ffprobe"
	"sharecut/internal/services"
	"sharecut/internal/timecode"
)

// Default chapter title fragments written by the recorder.
const (
	DefaultStartToken = "Sharing Started"
	DefaultStopToken  = "Sharing Stopped"
)

// Marker is a chapter boundary: the time it starts at and its title.
type Marker struct {
	At    float64 `json:"at" yaml:"at"`
	Label string  `json:"label" yaml:"label"`
}

// Tokens are the case-sensitive substrings that mark sharing start and stop.
type Tokens struct {
	Start string
	Stop  string
}

// DefaultTokens returns the recorder's built-in marker phrases.
func DefaultTokens() Tokens {
	return Tokens{Start: DefaultStartToken, Stop: DefaultStopToken}
}

// Validate ensures both tokens are usable.
func (t Tokens) Validate() error {
	switch {
	case t.Start == "":
		return services.Wrap(services.ErrConfiguration, "timeline", "tokens", "start token is empty", nil)
	case t.Stop == "":
		return services.Wrap(services.ErrConfiguration, "timeline", "tokens", "stop token is empty", nil)
	case t.Start == t.Stop:
		return services.Wrap(services.ErrConfiguration, "timeline", "tokens", fmt.Sprintf("start and stop tokens are identical (%q)", t.Start), nil)
	}
	return nil
}

// MarkersFromChapters converts ffprobe chapter records into markers.
func MarkersFromChapters(chapters []ffprobe.Chapter) ([]Marker, error) {
	markers := make([]Marker, 0, len(chapters))
	for i, chapter := range chapters {
		at, err := timecode.ParseDecimal(chapter.StartTime)
		if err != nil {
			return nil, services.Wrap(services.ErrParse, "timeline", "chapters", fmt.Sprintf("chapter %d start_time %q", i, chapter.StartTime), err)
		}
		markers = append(markers, Marker{At: at, Label: chapter.Tags.Title})
	}
	return markers, nil
}

// extractState is the fold state: idle, or holding a pending start.
type extractState struct {
	pending bool
	start   float64
}

// Extract scans markers in order and emits the sharing intervals they
// describe. A start while a start is already pending replaces it; a stop with
// nothing pending is ignored; a start never followed by a stop yields one
// open-ended interval.
func Extract(markers []Marker, tokens Tokens) (Timeline, error) {
	if err := tokens.Validate(); err != nil {
		return Timeline{}, err
	}

	var (
		state     extractState
		intervals []Interval
		prev      = math.Inf(-1)
	)
	for i, marker := range markers {
		if err := checkMarker(i, marker, prev); err != nil {
			return Timeline{}, err
		}
		prev = marker.At

		switch {
		case strings.Contains(marker.Label, tokens.Start):
			state = extractState{pending: true, start: marker.At}
		case strings.Contains(marker.Label, tokens.Stop) && state.pending:
			if marker.At > state.start {
				intervals = append(intervals, Interval{Start: state.start, End: At(marker.At)})
			}
			state = extractState{}
		}
	}
	if state.pending {
		intervals = append(intervals, Interval{Start: state.start, End: Open})
	}
	return Timeline{Intervals: intervals}, nil
}

func checkMarker(index int, marker Marker, prev float64) error {
	var reason error
	switch {
	case math.IsNaN(marker.At) || math.IsInf(marker.At, 0):
		reason = errors.New("time is not finite")
	case marker.At < 0:
		reason = errors.New("time is negative")
	case marker.At < prev:
		reason = fmt.Errorf("time precedes previous marker at %s", timecode.FormatDecimal(prev))
	}
	if reason == nil {
		return nil
	}
	return services.Wrap(services.ErrParse, "timeline", "extract", fmt.Sprintf("marker %d %q at %v", index, marker.Label, marker.At), reason)
}
