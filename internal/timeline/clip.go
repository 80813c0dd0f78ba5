package timeline

import (
	"fmt"
	"math"

	"sharecut/internal/services"
	"sharecut/internal/timecode"
)

// TrimWindow selects the [Start, End) sub-range of the source recording that
// is written to the output. The zero value keeps everything.
type TrimWindow struct {
	Start float64 `json:"start" yaml:"start"`
	End   Instant `json:"end" yaml:"end"`
}

// Identity is the window that keeps the whole recording.
var Identity = TrimWindow{End: Open}

// ParseTrimWindow builds a window from optional start and end time strings.
func ParseTrimWindow(start, end string) (TrimWindow, error) {
	window := Identity
	if start != "" {
		seconds, err := timecode.ParseSeconds(start)
		if err != nil {
			return TrimWindow{}, err
		}
		window.Start = seconds
	}
	if end != "" {
		seconds, err := timecode.ParseSeconds(end)
		if err != nil {
			return TrimWindow{}, err
		}
		window.End = At(seconds)
	}
	if err := window.Validate(); err != nil {
		return TrimWindow{}, err
	}
	return window, nil
}

// Validate rejects windows that select nothing.
func (w TrimWindow) Validate() error {
	if w.Start < 0 || math.IsNaN(w.Start) {
		return services.Wrap(services.ErrConfiguration, "timeline", "trim", fmt.Sprintf("start %v is negative", w.Start), nil)
	}
	if end := w.end(); !end.IsOpen() && end.Seconds() <= w.Start {
		return services.Wrap(services.ErrConfiguration, "timeline", "trim",
			fmt.Sprintf("end %s is not after start %s", timecode.Format(end.Seconds()), timecode.Format(w.Start)), nil)
	}
	return nil
}

// IsIdentity reports whether the window keeps the whole recording.
func (w TrimWindow) IsIdentity() bool {
	return w.Start == 0 && w.end().IsOpen()
}

// Bounded reports whether the window has an end time.
func (w TrimWindow) Bounded() bool {
	return !w.end().IsOpen()
}

// EndSeconds returns the absolute end time, or +Inf when unbounded.
func (w TrimWindow) EndSeconds() float64 {
	return w.end().Seconds()
}

// Length returns the trimmed duration relative to the window start, or the
// open sentinel when the window has no end.
func (w TrimWindow) Length() Instant {
	end := w.end()
	if end.IsOpen() {
		return Open
	}
	return At(end.Seconds() - w.Start)
}

// end treats an unset End as "no end" so TrimWindow{} means identity. At(0)
// is a bounded end and is rejected by Validate.
func (w TrimWindow) end() Instant {
	if !w.End.IsSet() {
		return Open
	}
	return w.End
}

// Clip re-bases the timeline onto w and drops or truncates intervals that
// fall outside it. The result's origin is w.Start, so clipping the result
// again with the same window returns it unchanged.
func (tl Timeline) Clip(w TrimWindow) Timeline {
	shift := w.Start - tl.Origin
	boundary := w.Length()

	out := make([]Interval, 0, len(tl.Intervals))
	for _, iv := range tl.Intervals {
		start := iv.Start - shift
		end := iv.End
		if !end.IsOpen() {
			end = At(end.Seconds() - shift)
		}

		if !boundary.IsOpen() && start >= boundary.Seconds() {
			continue
		}
		if start < 0 {
			start = 0
		}
		if !boundary.IsOpen() && end.Seconds() > boundary.Seconds() {
			end = boundary
		}
		if !end.IsOpen() && end.Seconds() <= 0 {
			continue
		}
		out = append(out, Interval{Start: start, End: end})
	}
	return Timeline{Origin: w.Start, Intervals: out}
}
