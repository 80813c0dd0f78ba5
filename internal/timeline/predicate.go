package timeline

// View names the two compositing branches.
type View string

const (
	ViewSpeaker  View = "speaker"
	ViewCombined View = "combined"
)

// Range is a half-open span [Start, End) during which a view is active.
type Range struct {
	Start float64 `json:"start" yaml:"start"`
	End   Instant `json:"end" yaml:"end"`
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t float64) bool {
	return t >= r.Start && t < r.End.Seconds()
}

// Predicates holds the complementary visibility ranges of both views.
type Predicates struct {
	Speaker  []Range `json:"speaker" yaml:"speaker"`
	Combined []Range `json:"combined" yaml:"combined"`
}

// Partition splits [0, ∞) into speaker and combined ranges. The timeline must
// satisfy Validate; Extract and Clip always produce such timelines.
func Partition(tl Timeline) Predicates {
	var p Predicates
	cursor := 0.0
	for _, iv := range tl.Intervals {
		if iv.Start > cursor {
			p.Speaker = append(p.Speaker, Range{Start: cursor, End: At(iv.Start)})
		}
		p.Combined = append(p.Combined, Range{Start: iv.Start, End: iv.End})
		if iv.End.IsOpen() {
			return p
		}
		cursor = iv.End.Seconds()
	}
	p.Speaker = append(p.Speaker, Range{Start: cursor, End: Open})
	return p
}

// CombinedAt reports whether the combined view is active at t.
func (p Predicates) CombinedAt(t float64) bool {
	return anyContains(p.Combined, t)
}

// SpeakerAt reports whether the speaker view is active at t.
func (p Predicates) SpeakerAt(t float64) bool {
	return anyContains(p.Speaker, t)
}

// ViewAt returns the view active at t.
func (p Predicates) ViewAt(t float64) View {
	if p.CombinedAt(t) {
		return ViewCombined
	}
	return ViewSpeaker
}

func anyContains(ranges []Range, t float64) bool {
	for _, r := range ranges {
		if r.Contains(t) {
			return true
		}
	}
	return false
}
