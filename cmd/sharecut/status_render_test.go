package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sharecut/internal/preflight"
)

func TestRenderPreflightPlain(t *testing.T) {
	results := []preflight.Result{
		{Name: "FFmpeg", Passed: true, Detail: "ffmpeg version 7.1"},
		{Name: "Camera recording", Passed: false, Detail: "camera.mp4: no such file"},
	}
	want := []string{
		"== Preflight ==",
		"---------------",
		"  FFmpeg:              [OK] ffmpeg version 7.1",
		"  Camera recording:    [ERROR] camera.mp4: no such file",
	}
	if diff := cmp.Diff(want, renderPreflight(results, false)); diff != "" {
		t.Fatalf("renderPreflight mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderPreflightColorize(t *testing.T) {
	lines := renderPreflight([]preflight.Result{{Name: "Output", Passed: false}}, true)
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, ansiRed) || !strings.HasSuffix(last, ansiReset) {
		t.Fatalf("expected red failure line, got %q", last)
	}
	if !strings.HasPrefix(lines[0], ansiBlue) {
		t.Fatalf("expected blue header, got %q", lines[0])
	}
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never terminals")
	}
}
