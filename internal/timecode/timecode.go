package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"sharecut/internal/services"
)

// ParseSeconds converts HH:MM:SS, MM:SS, or bare seconds into seconds.
func ParseSeconds(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, parseError(value, errors.New("empty value"))
	}

	parts := strings.Split(trimmed, ":")
	var (
		hours, minutes int
		seconds        float64
		err            error
	)
	switch len(parts) {
	case 3:
		if hours, err = parseUnit(parts[0], -1); err != nil {
			return 0, parseError(value, fmt.Errorf("hours: %w", err))
		}
		if minutes, err = parseUnit(parts[1], 60); err != nil {
			return 0, parseError(value, fmt.Errorf("minutes: %w", err))
		}
		if seconds, err = parseFraction(parts[2], 60); err != nil {
			return 0, parseError(value, fmt.Errorf("seconds: %w", err))
		}
	case 2:
		if minutes, err = parseUnit(parts[0], -1); err != nil {
			return 0, parseError(value, fmt.Errorf("minutes: %w", err))
		}
		if seconds, err = parseFraction(parts[1], 60); err != nil {
			return 0, parseError(value, fmt.Errorf("seconds: %w", err))
		}
	case 1:
		if seconds, err = parseFraction(parts[0], -1); err != nil {
			return 0, parseError(value, err)
		}
	default:
		return 0, parseError(value, errors.New("too many ':' separators"))
	}

	return float64(hours)*3600 + float64(minutes)*60 + seconds, nil
}

// ParseDecimal parses a decimal seconds value such as ffprobe's chapter
// start_time ("12.345000").
func ParseDecimal(value string) (float64, error) {
	seconds, err := parseFraction(strings.TrimSpace(value), -1)
	if err != nil {
		return 0, parseError(value, err)
	}
	return seconds, nil
}

// Format renders seconds as HH:MM:SS.ss for human-facing output.
func Format(seconds float64) string {
	if math.IsInf(seconds, 1) {
		return "end"
	}
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	whole := int64(seconds)
	hours := whole / 3600
	minutes := (whole % 3600) / 60
	rest := seconds - float64(hours*3600+minutes*60)
	return fmt.Sprintf("%02d:%02d:%05.2f", hours, minutes, rest)
}

// FormatDecimal renders seconds using the shortest decimal representation
// that round-trips, e.g. 5 -> "5", 20.25 -> "20.25".
func FormatDecimal(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

func parseUnit(field string, limit int) (int, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return 0, errors.New("empty field")
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", field)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}
	if limit > 0 && n >= limit {
		return 0, fmt.Errorf("value %d out of range (must be < %d)", n, limit)
	}
	return n, nil
}

func parseFraction(field string, limit float64) (float64, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return 0, errors.New("empty field")
	}
	n, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", field)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("not a finite number: %q", field)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %s", field)
	}
	if limit > 0 && n >= limit {
		return 0, fmt.Errorf("value %s out of range (must be < %g)", field, limit)
	}
	return n, nil
}

func parseError(value string, err error) error {
	return services.Wrap(services.ErrParse, "timecode", "parse", fmt.Sprintf("invalid time %q", value), err)
}
