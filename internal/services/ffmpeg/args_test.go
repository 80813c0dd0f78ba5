package ffmpeg

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"sharecut/internal/timeline"
)

func TestBuildArgsDefaultPolicy(t *testing.T) {
	got := BuildArgs(Job{
		Camera:      "camera.mp4",
		Slides:      "slides.mp4",
		Output:      "out.mp4",
		Trim:        timeline.Identity,
		FilterGraph: "[0:v]null[v]",
		OutputLabel: "v",
		HasAudio:    true,
		Policy:      DefaultPolicy(),
	})
	want := []string{
		"-hide_banner", "-y",
		"-i", "camera.mp4",
		"-i", "slides.mp4",
		"-filter_complex", "[0:v]null[v]",
		"-map", "[v]", "-map", "0:a",
		"-c:v", "libx264", "-preset", "veryfast", "-crf", "18",
		"-c:a", "copy", "-movflags", "+faststart",
		"out.mp4",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildArgsTrimVariants(t *testing.T) {
	tests := []struct {
		name string
		trim timeline.TrimWindow
		want []string
	}{
		{
			name: "start and end use duration",
			trim: timeline.TrimWindow{Start: 90, End: timeline.At(600)},
			want: []string{"-ss", "90", "-i", "cam", "-ss", "90", "-i", "sl", "-t", "510"},
		},
		{
			name: "end only uses absolute stop",
			trim: timeline.TrimWindow{End: timeline.At(600.5)},
			want: []string{"-i", "cam", "-i", "sl", "-to", "600.5"},
		},
		{
			name: "start only",
			trim: timeline.TrimWindow{Start: 12.25, End: timeline.Open},
			want: []string{"-ss", "12.25", "-i", "cam", "-ss", "12.25", "-i", "sl"},
		},
		{
			name: "zero window keeps everything",
			trim: timeline.TrimWindow{},
			want: []string{"-i", "cam", "-i", "sl"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := BuildArgs(Job{Camera: "cam", Slides: "sl", Output: "o.mp4", Trim: tc.trim, FilterGraph: "g"})
			// Skip -hide_banner and the overwrite flag; stop at the graph.
			got := args[2:indexOf(args, "-filter_complex")]
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("input args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildArgsWithoutAudioOrOverwrite(t *testing.T) {
	args := BuildArgs(Job{
		Camera:       "cam",
		Slides:       "sl",
		Output:       "o.mp4",
		FilterScript: "/tmp/graph.txt",
		OutputLabel:  "out",
		Policy:       Policy{VideoCodec: "libx265", MovFlags: ""},
	})
	want := []string{
		"-hide_banner", "-n",
		"-i", "cam", "-i", "sl",
		"-filter_complex_script", "/tmp/graph.txt",
		"-map", "[out]",
		"-c:v", "libx265",
		"o.mp4",
	}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandLineQuotesShellSyntax(t *testing.T) {
	got := CommandLine("ffmpeg", []string{"-i", "my talk.mp4", "-filter_complex", "[0:v]null[v]", "-movflags", "+faststart", "it's.mp4", ""})
	want := `ffmpeg -i 'my talk.mp4' -filter_complex '[0:v]null[v]' -movflags +faststart 'it'\''s.mp4' ''`
	if got != want {
		t.Fatalf("CommandLine = %s\nwant %s", got, want)
	}
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return len(values)
}
