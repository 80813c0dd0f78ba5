package timeline

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPartitionClosedInterval(t *testing.T) {
	p := Partition(Timeline{Intervals: []Interval{{Start: 5, End: At(20)}}})
	want := Predicates{
		Speaker:  []Range{{Start: 0, End: At(5)}, {Start: 20, End: Open}},
		Combined: []Range{{Start: 5, End: At(20)}},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("predicates mismatch (-want +got):\n%s", diff)
	}
}

func TestPartitionOpenInterval(t *testing.T) {
	p := Partition(Timeline{Intervals: []Interval{{Start: 5, End: Open}}})
	want := Predicates{
		Speaker:  []Range{{Start: 0, End: At(5)}},
		Combined: []Range{{Start: 5, End: Open}},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("predicates mismatch (-want +got):\n%s", diff)
	}
}

func TestPartitionNoIntervals(t *testing.T) {
	p := Partition(Timeline{})
	want := Predicates{Speaker: []Range{{Start: 0, End: Open}}}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("predicates mismatch (-want +got):\n%s", diff)
	}
}

func TestPartitionIntervalAtZeroAndAdjacent(t *testing.T) {
	p := Partition(Timeline{Intervals: []Interval{{Start: 0, End: At(5)}, {Start: 5, End: At(9)}}})
	want := Predicates{
		Speaker:  []Range{{Start: 9, End: Open}},
		Combined: []Range{{Start: 0, End: At(5)}, {Start: 5, End: At(9)}},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("predicates mismatch (-want +got):\n%s", diff)
	}
}

func TestPartitionBoundaryTiesFavourStart(t *testing.T) {
	p := Partition(Timeline{Intervals: []Interval{{Start: 5, End: At(20)}}})
	if !p.CombinedAt(5) || p.SpeakerAt(5) {
		t.Fatal("expected combined view at the start instant")
	}
	if p.CombinedAt(20) || !p.SpeakerAt(20) {
		t.Fatal("expected speaker view at the stop instant")
	}
	if p.ViewAt(4.999) != ViewSpeaker || p.ViewAt(19.999) != ViewCombined {
		t.Fatal("unexpected views around boundaries")
	}
}

func TestPartitionIsExactComplement(t *testing.T) {
	source := Timeline{Intervals: []Interval{
		{Start: 0, End: At(3)},
		{Start: 5, End: At(8)},
		{Start: 8, End: At(8.5)},
		{Start: 12, End: At(30)},
		{Start: 40, End: Open},
	}}
	windows := []TrimWindow{Identity, {Start: 4, End: Open}, {Start: 6, End: At(35)}, {Start: 50, End: At(60)}, {End: At(2)}}
	for _, window := range windows {
		p := Partition(source.Clip(window))
		assertPartition(t, p)
		for ts := 0.0; ts < 70; ts += 0.25 {
			if p.SpeakerAt(ts) == p.CombinedAt(ts) {
				t.Fatalf("window %+v: views not complementary at t=%v", window, ts)
			}
		}
	}
}

// assertPartition checks that the union of all ranges tiles [0, ∞) with no
// gaps or overlaps.
func assertPartition(t *testing.T, p Predicates) {
	t.Helper()
	all := append(append([]Range{}, p.Speaker...), p.Combined...)
	cursor := 0.0
	for len(all) > 0 {
		idx := -1
		for i, r := range all {
			if r.Start == cursor {
				idx = i
				break
			}
		}
		if idx < 0 {
			t.Fatalf("gap or overlap at %v in %+v", cursor, p)
		}
		r := all[idx]
		all = append(all[:idx], all[idx+1:]...)
		if r.End.IsOpen() {
			if len(all) != 0 {
				t.Fatalf("ranges after open range: %+v", all)
			}
			return
		}
		if r.End.Seconds() <= r.Start {
			t.Fatalf("empty range %+v", r)
		}
		cursor = r.End.Seconds()
	}
	if !math.IsInf(cursor, 1) {
		t.Fatalf("partition ends at %v instead of infinity", cursor)
	}
}
