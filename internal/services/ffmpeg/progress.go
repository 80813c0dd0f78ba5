package ffmpeg

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Progress is one block of ffmpeg's -progress output.
type Progress struct {
	Frame int64
	// OutTime is the output timestamp reached so far, in seconds.
	OutTime float64
	Speed   string
	Done    bool
}

// readProgress parses key=value progress blocks and emits one Progress per
// progress=continue|end terminator.
func readProgress(r io.Reader, emit func(Progress)) error {
	scanner := bufio.NewScanner(r)
	var current Progress
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		switch key {
		case "frame":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				current.Frame = n
			}
		case "out_time_us":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil && n >= 0 {
				current.OutTime = float64(n) / 1e6
			}
		case "speed":
			current.Speed = strings.TrimSpace(value)
		case "progress":
			current.Done = value == "end"
			if emit != nil {
				emit(current)
			}
		}
	}
	return scanner.Err()
}
