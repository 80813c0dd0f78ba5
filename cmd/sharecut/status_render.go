package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"sharecut/internal/preflight"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[34m"
)

// preflightLabelWidth fits the longest check name ("Camera recording:").
const preflightLabelWidth = 20

// renderPreflight formats check results under a header, one line per check.
// Passing checks are green and failing ones red when colorize is set.
func renderPreflight(results []preflight.Result, colorize bool) []string {
	header := "== Preflight =="
	lines := []string{paint(header, ansiBlue, colorize), paint(strings.Repeat("-", len(header)), ansiBlue, colorize)}
	for _, result := range results {
		status, color := "[OK]", ansiGreen
		if !result.Passed {
			status, color = "[ERROR]", ansiRed
		}
		if result.Detail != "" {
			status += " " + result.Detail
		}
		line := fmt.Sprintf("  %-*s %s", preflightLabelWidth, result.Name+":", status)
		lines = append(lines, paint(line, color, colorize))
	}
	return lines
}

func paint(text, color string, colorize bool) string {
	if !colorize {
		return text
	}
	return color + text + ansiReset
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
