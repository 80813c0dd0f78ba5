package deps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
)

// CompositingFilters are the ffmpeg filters a composed graph may reference.
var CompositingFilters = []string{"split", "null", "scale", "pad", "overlay", "movie", "setpts"}

// MediaRequirements lists the ffmpeg and ffprobe binaries.
func MediaRequirements(ffmpegBinary, ffprobeBinary string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpegBinary,
			Description: "Required for compositing and encoding",
			VersionArgs: []string{"-hide_banner", "-version"},
		},
		{
			Name:        "FFprobe",
			Command:     ffprobeBinary,
			Description: "Required for reading chapters and stream sizes",
			VersionArgs: []string{"-hide_banner", "-version"},
		},
	}
}

// CheckFilters reports whether the ffmpeg build exposes every named filter.
func CheckFilters(ctx context.Context, ffmpegBinary string, required []string) Status {
	status := Status{
		Name:        "FFmpeg filters",
		Command:     ffmpegBinary,
		Description: "Filters used by composed graphs",
	}
	out, err := commandContext(ctx, ffmpegBinary, "-hide_banner", "-filters").Output() //nolint:gosec
	if err != nil {
		status.Detail = fmt.Sprintf("list filters: %v", err)
		return status
	}
	available := parseFilterNames(out)
	var missing []string
	for _, name := range required {
		if !available[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		status.Detail = "missing " + strings.Join(missing, ", ")
		return status
	}
	status.Available = true
	status.Detail = strings.Join(required, ", ")
	return status
}

// parseFilterNames reads `ffmpeg -filters` output, where each filter row is
// "<flags> <name> <pads> <description>".
func parseFilterNames(out []byte) map[string]bool {
	names := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 || !strings.Contains(fields[2], "->") {
			continue
		}
		names[fields[1]] = true
	}
	return names
}
