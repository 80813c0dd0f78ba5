package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sharecut/internal/services"
)

// Dimensions is a frame size in pixels.
type Dimensions struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Valid reports whether both sides are positive.
func (d Dimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

// IsZero reports whether the dimensions are unset.
func (d Dimensions) IsZero() bool {
	return d.Width == 0 && d.Height == 0
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// ParseDimensions accepts WIDTHxHEIGHT ("1920x1080") or HEIGHTp ("1080p",
// which assumes a 16:9 frame).
func ParseDimensions(value string) (Dimensions, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return Dimensions{}, dimensionError(value, errors.New("empty value"))
	}

	var dims Dimensions
	switch {
	case strings.Contains(normalized, "x"):
		parts := strings.Split(normalized, "x")
		if len(parts) != 2 {
			return Dimensions{}, dimensionError(value, errors.New("expected WIDTHxHEIGHT"))
		}
		width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return Dimensions{}, dimensionError(value, fmt.Errorf("width: %w", err))
		}
		height, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return Dimensions{}, dimensionError(value, fmt.Errorf("height: %w", err))
		}
		dims = Dimensions{Width: width, Height: height}
	case strings.HasSuffix(normalized, "p"):
		height, err := strconv.Atoi(strings.TrimSuffix(normalized, "p"))
		if err != nil {
			return Dimensions{}, dimensionError(value, fmt.Errorf("height: %w", err))
		}
		dims = Dimensions{Width: height * 16 / 9, Height: height}
	default:
		return Dimensions{}, dimensionError(value, errors.New("use WIDTHxHEIGHT or HEIGHTp"))
	}

	if !dims.Valid() {
		return Dimensions{}, dimensionError(value, fmt.Errorf("non-positive size %s", dims))
	}
	return dims, nil
}

func dimensionError(value string, err error) error {
	return services.Wrap(services.ErrParse, "layout", "dimensions", fmt.Sprintf("invalid dimensions %q", value), err)
}
