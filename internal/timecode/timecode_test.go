package timecode

import (
	"errors"
	"math"
	"testing"

	"sharecut/internal/services"
)

func TestParseSeconds(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"01:02:03", 3723},
		{"00:10:00.5", 600.5},
		{"05:30", 330},
		{"90", 90},
		{"12.25", 12.25},
		{" 00:00:10 ", 10},
		{"100:00", 6000},
	}
	for _, tc := range cases {
		got, err := ParseSeconds(tc.input)
		if err != nil {
			t.Fatalf("ParseSeconds(%q) returned error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParseSeconds(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseSecondsRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "  ", "bogus", "1:2:3:4", "00:61:00", "00:00:60", "01:90", "-5", "00:-1", "1::2", "NaN", "Inf", "a:10"} {
		_, err := ParseSeconds(input)
		if err == nil {
			t.Fatalf("expected error for %q", input)
		}
		if !errors.Is(err, services.ErrParse) {
			t.Fatalf("expected parse marker for %q, got %v", input, err)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	got, err := ParseDecimal("12.345000")
	if err != nil {
		t.Fatalf("ParseDecimal returned error: %v", err)
	}
	if got != 12.345 {
		t.Fatalf("unexpected value %v", got)
	}
	if _, err := ParseDecimal("01:00"); !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected parse error for clock format, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	if got := Format(3723.5); got != "01:02:03.50" {
		t.Fatalf("unexpected format: %q", got)
	}
	if got := Format(math.Inf(1)); got != "end" {
		t.Fatalf("unexpected open format: %q", got)
	}
	if got := FormatDecimal(20); got != "20" {
		t.Fatalf("unexpected decimal: %q", got)
	}
	if got := FormatDecimal(5.125); got != "5.125" {
		t.Fatalf("unexpected decimal: %q", got)
	}
}
