package ffmpeg

import (
	"regexp"
	"strconv"
	"strings"

	"sharecut/internal/timecode"
	"sharecut/internal/timeline"
)

// Job describes one composition encode.
type Job struct {
	Camera string
	Slides string
	Output string
	Trim   timeline.TrimWindow
	// FilterGraph is passed inline with -filter_complex.
	FilterGraph string
	// FilterScript, when set, replaces FilterGraph with
	// -filter_complex_script pointing at a file on disk.
	FilterScript string
	OutputLabel  string
	// HasAudio maps the camera's audio into the output.
	HasAudio bool
	Policy   Policy
}

// BuildArgs renders the ffmpeg argument vector for job. Seeking happens
// before each input so both streams start at the trim origin.
func BuildArgs(job Job) []string {
	policy := job.Policy.normalized()
	args := []string{"-hide_banner"}
	if policy.Overwrite {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}

	start := ""
	if job.Trim.Start > 0 {
		start = timecode.FormatDecimal(job.Trim.Start)
	}
	for _, input := range []string{job.Camera, job.Slides} {
		if start != "" {
			args = append(args, "-ss", start)
		}
		args = append(args, "-i", input)
	}
	if job.Trim.Bounded() {
		if start != "" {
			args = append(args, "-t", timecode.FormatDecimal(job.Trim.Length().Seconds()))
		} else {
			args = append(args, "-to", timecode.FormatDecimal(job.Trim.EndSeconds()))
		}
	}

	if job.FilterScript != "" {
		args = append(args, "-filter_complex_script", job.FilterScript)
	} else {
		args = append(args, "-filter_complex", job.FilterGraph)
	}

	label := job.OutputLabel
	if label == "" {
		label = "v"
	}
	args = append(args, "-map", "["+label+"]")
	if job.HasAudio {
		args = append(args, "-map", "0:a")
	}

	args = append(args, "-c:v", policy.VideoCodec)
	if policy.Preset != "" {
		args = append(args, "-preset", policy.Preset)
	}
	if policy.CRF > 0 {
		args = append(args, "-crf", strconv.Itoa(policy.CRF))
	}
	if job.HasAudio {
		args = append(args, "-c:a", policy.AudioCodec)
	}
	if policy.MovFlags != "" {
		args = append(args, "-movflags", policy.MovFlags)
	}
	return append(args, job.Output)
}

var shellSafe = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

// CommandLine renders a copy-pasteable POSIX shell command.
func CommandLine(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, shellQuote(binary))
	for _, arg := range args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

func shellQuote(arg string) string {
	if arg != "" && shellSafe.MatchString(arg) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
