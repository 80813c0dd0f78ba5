package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sharecut/internal/config"
	"sharecut/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckReadableFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "camera.mp4")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckReadableFile("Camera", file); !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
	if result := CheckReadableFile("Camera", dir); result.Passed {
		t.Fatal("expected failure for directory")
	}
	if result := CheckReadableFile("Camera", filepath.Join(dir, "missing.mp4")); result.Passed {
		t.Fatal("expected failure for missing file")
	}
}

func TestCheckOutputTarget(t *testing.T) {
	dir := t.TempDir()
	camera := filepath.Join(dir, "camera.mp4")

	if result := CheckOutputTarget(filepath.Join(dir, "out.mp4"), camera); !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
	if result := CheckOutputTarget(camera, camera); result.Passed || !strings.Contains(result.Detail, "same file as input") {
		t.Fatalf("expected input collision failure, got %#v", result)
	}
	if result := CheckOutputTarget(filepath.Join(dir, "missing", "out.mp4")); result.Passed {
		t.Fatal("expected failure for missing output directory")
	}
}

func TestRunAllReportsMissingBinaries(t *testing.T) {
	cfg := config.Default()
	cfg.FFmpeg.Binary = "sharecut-test-missing-ffmpeg"
	cfg.FFmpeg.FFprobeBinary = "sharecut-test-missing-ffprobe"

	dir := t.TempDir()
	results := RunAll(context.Background(), &cfg, Targets{Output: filepath.Join(dir, "out.mp4")})
	if len(results) != 3 {
		t.Fatalf("expected ffmpeg, ffprobe and output results, got %#v", results)
	}
	failed := Failed(results)
	if len(failed) != 2 || failed[0].Name != "FFmpeg" || failed[1].Name != "FFprobe" {
		t.Fatalf("unexpected failures %#v", failed)
	}
	if !results[2].Passed {
		t.Fatalf("expected output check to pass, got %s", results[2].Detail)
	}
}

func TestRunAllWithStubbedMedia(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedMedia())
	dir := t.TempDir()
	camera := filepath.Join(dir, "camera.mp4")
	slides := filepath.Join(dir, "slides.mp4")
	testsupport.WriteFile(t, camera, "")
	testsupport.WriteFile(t, slides, "")

	results := RunAll(context.Background(), cfg, Targets{
		Camera: camera,
		Slides: slides,
		Output: filepath.Join(dir, "out.mp4"),
	})
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures %#v", failed)
	}
	names := make([]string, 0, len(results))
	for _, result := range results {
		names = append(names, result.Name)
	}
	want := "FFmpeg,FFprobe,FFmpeg filters,Camera recording,Slides recording,Output"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("checks = %s, want %s", got, want)
	}
	if results[0].Detail != "ffmpeg version 7.1" {
		t.Fatalf("unexpected ffmpeg detail %q", results[0].Detail)
	}
}
