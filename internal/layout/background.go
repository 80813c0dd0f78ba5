package layout

import (
	"fmt"
	"strings"

	"sharecut/internal/services"
)

// DefaultBackgroundColor fills any area not covered by video.
const DefaultBackgroundColor = "black"

// Background is the base layer under both views: a solid colour, or an image
// that is aspect-fit to the canvas and padded with the colour.
type Background struct {
	Color string `json:"color" yaml:"color"`
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

// HasImage reports whether an image background was requested.
func (b Background) HasImage() bool {
	return strings.TrimSpace(b.Image) != ""
}

// Normalized trims fields and applies the default colour.
func (b Background) Normalized() Background {
	b.Color = strings.TrimSpace(b.Color)
	if b.Color == "" {
		b.Color = DefaultBackgroundColor
	}
	b.Image = strings.TrimSpace(b.Image)
	return b
}

// Validate rejects values that cannot be embedded in a filter graph.
func (b Background) Validate() error {
	n := b.Normalized()
	if strings.ContainsAny(n.Color, " \t'\"[]:;,=\\") {
		return services.Wrap(services.ErrConfiguration, "layout", "background",
			fmt.Sprintf("invalid background color %q", b.Color), nil)
	}
	if strings.ContainsAny(n.Image, "'\\\n") {
		return services.Wrap(services.ErrConfiguration, "layout", "background",
			fmt.Sprintf("background image path %q contains quotes or backslashes", b.Image), nil)
	}
	return nil
}
