package testsupport

import (
	"fmt"
	"path/filepath"
	"testing"

	"sharecut/internal/config"
)

// FilterListing is `ffmpeg -filters` output that lists every filter a
// composed graph uses.
const FilterListing = ` Filters:
  T.. = Timeline support
  .S. = Slice threading
  ..C = Command support
 ... split             V->N       Pass on the input to N video outputs.
 ... null              V->V       Pass the source unchanged to the output.
 ..C scale             V->V       Scale the input video size and/or convert the image format.
 ... pad               V->V       Pad the input video.
 T.C overlay           VV->V      Overlay a video source on top of the input.
 ... movie             |->N       Read audio and/or video from a movie source.
 ... setpts            V->V       Set PTS for the output video frame.
`

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig returns the default config with logging quietened. Options are
// applied in order.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: t.TempDir(),
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithBinaries points the config at the given ffmpeg and ffprobe.
func WithBinaries(ffmpeg, ffprobe string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.FFmpeg.Binary = ffmpeg
		b.cfg.FFmpeg.FFprobeBinary = ffprobe
	}
}

// WithStubbedMedia writes ffmpeg and ffprobe stubs that answer -version and
// -filters and fail everything else, then points the config at them.
func WithStubbedMedia() ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		listing := filepath.Join(binDir, "filters.txt")
		WriteFile(b.t, listing, FilterListing)

		ffmpeg := WriteStub(b.t, binDir, "ffmpeg", fmt.Sprintf(`case "$*" in
  *-filters*) cat %q ;;
  *-version*) echo "ffmpeg version 7.1" ;;
  *) exit 1 ;;
esac
`, listing))
		ffprobe := WriteStub(b.t, binDir, "ffprobe", `case "$*" in
  *-version*) echo "ffprobe version 7.1" ;;
  *) exit 1 ;;
esac
`)
		b.cfg.FFmpeg.Binary = ffmpeg
		b.cfg.FFmpeg.FFprobeBinary = ffprobe
	}
}
