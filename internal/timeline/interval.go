package timeline

import (
	"fmt"

	"sharecut/internal/services"
	"sharecut/internal/timecode"
)

// Interval is a span during which the screen share is the active content.
type Interval struct {
	Start float64 `json:"start" yaml:"start"`
	End   Instant `json:"end" yaml:"end"`
}

// Contains reports whether t falls inside the half-open interval.
func (iv Interval) Contains(t float64) bool {
	return t >= iv.Start && t < iv.End.Seconds()
}

// Duration returns the interval length, +Inf when open-ended.
func (iv Interval) Duration() float64 {
	return iv.End.Seconds() - iv.Start
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s-%s", timecode.Format(iv.Start), timecode.Format(iv.End.Seconds()))
}

// Timeline is an ordered, non-overlapping set of sharing intervals. Origin is
// the absolute source time that t=0 corresponds to.
type Timeline struct {
	Origin    float64    `json:"origin" yaml:"origin"`
	Intervals []Interval `json:"intervals" yaml:"intervals"`
}

// Empty reports whether the timeline has no sharing intervals.
func (tl Timeline) Empty() bool { return len(tl.Intervals) == 0 }

// Validate checks ordering, bounds, and the open-interval rule.
func (tl Timeline) Validate() error {
	prevEnd := 0.0
	for i, iv := range tl.Intervals {
		if iv.Start < 0 {
			return invalid(i, iv, "negative start")
		}
		if iv.Start < prevEnd {
			return invalid(i, iv, "overlaps previous interval")
		}
		if iv.End.IsOpen() {
			if i != len(tl.Intervals)-1 {
				return invalid(i, iv, "open-ended interval is not last")
			}
			continue
		}
		if iv.End.Seconds() <= iv.Start {
			return invalid(i, iv, "end is not after start")
		}
		prevEnd = iv.End.Seconds()
	}
	return nil
}

func invalid(index int, iv Interval, reason string) error {
	return services.Wrap(services.ErrValidation, "timeline", "validate", fmt.Sprintf("interval %d (%s): %s", index, iv, reason), nil)
}
