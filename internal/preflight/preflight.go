package preflight

import (
	"context"
	"strings"

	"sharecut/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Targets are the files one composition reads and writes. Empty fields are
// skipped.
type Targets struct {
	Camera          string
	Slides          string
	Output          string
	BackgroundImage string
}

// RunAll executes the dependency checks and, when targets are given, the
// input and output checks.
func RunAll(ctx context.Context, cfg *config.Config, targets Targets) []Result {
	if cfg == nil {
		return nil
	}
	var results []Result
	for _, status := range CheckSystemDeps(ctx, cfg) {
		detail := status.Detail
		if status.Available && status.Version != "" {
			detail = status.Version
		}
		results = append(results, Result{
			Name:   status.Name,
			Passed: status.Available || status.Optional,
			Detail: detail,
		})
	}

	if strings.TrimSpace(targets.Camera) != "" {
		results = append(results, CheckReadableFile("Camera recording", targets.Camera))
	}
	if strings.TrimSpace(targets.Slides) != "" {
		results = append(results, CheckReadableFile("Slides recording", targets.Slides))
	}
	if strings.TrimSpace(targets.BackgroundImage) != "" {
		results = append(results, CheckReadableFile("Background image", targets.BackgroundImage))
	}
	if strings.TrimSpace(targets.Output) != "" {
		results = append(results, CheckOutputTarget(targets.Output, targets.Camera, targets.Slides))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
