package filtergraph

import (
	"strings"

	"sharecut/internal/timecode"
	"sharecut/internal/timeline"
)

// Expr is a boolean function of playback time t.
type Expr interface {
	Eval(t float64) bool
	render(b *strings.Builder)
}

// Never is false for every t.
type Never struct{}

func (Never) Eval(float64) bool { return false }

func (Never) render(b *strings.Builder) { b.WriteString("0") }

// AtLeast holds for t >= Start.
type AtLeast struct {
	Start float64
}

func (e AtLeast) Eval(t float64) bool { return t >= e.Start }

func (e AtLeast) render(b *strings.Builder) {
	b.WriteString("gte(t,")
	b.WriteString(timecode.FormatDecimal(e.Start))
	b.WriteString(")")
}

// Between holds for Start <= t < End.
type Between struct {
	Start float64
	End   float64
}

func (e Between) Eval(t float64) bool { return t >= e.Start && t < e.End }

func (e Between) render(b *strings.Builder) {
	b.WriteString("gte(t,")
	b.WriteString(timecode.FormatDecimal(e.Start))
	b.WriteString(")*lt(t,")
	b.WriteString(timecode.FormatDecimal(e.End))
	b.WriteString(")")
}

// Or holds when any operand holds. An empty Or never holds.
type Or []Expr

func (e Or) Eval(t float64) bool {
	for _, term := range e {
		if term.Eval(t) {
			return true
		}
	}
	return false
}

func (e Or) render(b *strings.Builder) {
	if len(e) == 0 {
		Never{}.render(b)
		return
	}
	for i, term := range e {
		if i > 0 {
			b.WriteByte('+')
		}
		term.render(b)
	}
}

// Render serializes an expression in ffmpeg's expression syntax.
func Render(e Expr) string {
	if e == nil {
		return "0"
	}
	var b strings.Builder
	e.render(&b)
	return b.String()
}

// EnableFor builds the expression that holds exactly inside ranges.
func EnableFor(ranges []timeline.Range) Expr {
	if len(ranges) == 0 {
		return Never{}
	}
	terms := make(Or, 0, len(ranges))
	for _, r := range ranges {
		if r.End.IsOpen() {
			terms = append(terms, AtLeast{Start: r.Start})
			continue
		}
		terms = append(terms, Between{Start: r.Start, End: r.End.Seconds()})
	}
	return terms
}
