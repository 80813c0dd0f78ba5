package composer

import (
	"strings"

	"sharecut/internal/layout"
	"sharecut/internal/services"
	"sharecut/internal/services/ffmpeg"
	"sharecut/internal/timeline"
)

// Request describes one composition.
type Request struct {
	Camera string
	Slides string
	Output string
	Trim   timeline.TrimWindow
	Mode   layout.Mode
	// Dimensions is the explicit output size; zero keeps the camera's.
	Dimensions layout.Dimensions
	Background layout.Background
	Tokens     timeline.Tokens
	Policy     ffmpeg.Policy
	// GraphOut, when set, receives the filter graph as a script file and the
	// encode reads it with -filter_complex_script.
	GraphOut string
	DryRun   bool
}

func (r Request) validate() error {
	for _, field := range []struct{ name, value string }{
		{"camera", r.Camera},
		{"slides", r.Slides},
		{"output", r.Output},
	} {
		if strings.TrimSpace(field.value) == "" {
			return services.Wrap(services.ErrValidation, "compose", "request", field.name+" path required", nil)
		}
	}
	if err := r.Tokens.Validate(); err != nil {
		return err
	}
	if err := r.Trim.Validate(); err != nil {
		return err
	}
	if err := r.Background.Validate(); err != nil {
		return err
	}
	if _, err := layout.ParseMode(string(r.Mode)); err != nil {
		return err
	}
	if !r.Dimensions.IsZero() && !r.Dimensions.Valid() {
		return services.Wrap(services.ErrConfiguration, "compose", "request", "invalid output dimensions "+r.Dimensions.String(), nil)
	}
	return nil
}
