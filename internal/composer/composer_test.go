package composer

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"sharecut/internal/layout"
	"sharecut/internal/media/ffprobe"
	"sharecut/internal/services"
	"sharecut/internal/services/ffmpeg"
	"sharecut/internal/timeline"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeProber struct {
	results map[string]ffprobe.Result
	err     error

	mu    sync.Mutex
	calls []string
}

func (f *fakeProber) Inspect(_ context.Context, path string) (ffprobe.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	f.mu.Unlock()
	if f.err != nil {
		return ffprobe.Result{}, f.err
	}
	result, ok := f.results[path]
	if !ok {
		return ffprobe.Result{}, errors.New("unexpected path " + path)
	}
	return result, nil
}

type fakeRunner struct {
	updates []ffmpeg.Progress
	err     error
	jobs    []ffmpeg.Job
}

func (f *fakeRunner) Encode(_ context.Context, job ffmpeg.Job, progress func(ffmpeg.Progress)) error {
	f.jobs = append(f.jobs, job)
	for _, update := range f.updates {
		progress(update)
	}
	return f.err
}

func chapter(start, title string) ffprobe.Chapter {
	return ffprobe.Chapter{StartTime: start, Tags: ffprobe.ChapterTags{Title: title}}
}

func fixtureProber() *fakeProber {
	return &fakeProber{results: map[string]ffprobe.Result{
		"camera.mp4": {
			Streams: []ffprobe.Stream{
				{Index: 0, CodecType: "video", Width: 1920, Height: 1080},
				{Index: 1, CodecType: "audio"},
			},
			Format: ffprobe.Format{Duration: "60.000000"},
		},
		"slides.mp4": {
			Streams: []ffprobe.Stream{{Index: 0, CodecType: "video", Width: 1920, Height: 1080}},
			Chapters: []ffprobe.Chapter{
				chapter("0.000000", "Intro"),
				chapter("5.000000", "Sharing Started"),
				chapter("20.000000", "Sharing Stopped"),
				chapter("30.000000", "Sharing Started"),
			},
		},
	}}
}

func baseRequest() Request {
	return Request{
		Camera: "camera.mp4",
		Slides: "slides.mp4",
		Output: "out.mp4",
		Trim:   timeline.Identity,
		Mode:   layout.ModeSideBySide,
		Tokens: timeline.DefaultTokens(),
		Policy: ffmpeg.DefaultPolicy(),
	}
}

func newTestComposer(prober Prober, runner Runner) *Composer {
	c := New(prober, runner)
	c.newRunID = func() string { return "run-1" }
	return c
}

func TestPlanSideBySide(t *testing.T) {
	prober := fixtureProber()
	c := newTestComposer(prober, nil)

	plan, err := c.Plan(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan.RunID != "run-1" {
		t.Fatalf("run id = %q", plan.RunID)
	}
	if len(prober.calls) != 2 {
		t.Fatalf("expected one probe per input, got %v", prober.calls)
	}
	if plan.CameraSize != (layout.Dimensions{Width: 1920, Height: 1080}) {
		t.Fatalf("camera size = %v", plan.CameraSize)
	}
	if !plan.CameraHasAudio {
		t.Fatal("expected camera audio to be detected")
	}

	want := []timeline.Interval{
		{Start: 5, End: timeline.At(20)},
		{Start: 30, End: timeline.Open},
	}
	if diff := cmp.Diff(want, plan.Timeline.Intervals); diff != "" {
		t.Fatalf("intervals mismatch (-want +got):\n%s", diff)
	}

	wantGraph := "[0:v]split=2[camera_1][camera_2];" +
		"[camera_1]null[speaker];" +
		"[1:v]scale=w=960:h=1080:force_original_aspect_ratio=decrease[slides_fit];" +
		"[slides_fit]pad=w=1920:h=1080:x=(960-iw)/2:y=(1080-ih)/2:color=black[slides_canvas];" +
		"[camera_2]scale=w=960:h=1080:force_original_aspect_ratio=decrease[camera_fit];" +
		"[slides_canvas][camera_fit]overlay=x=960+(960-w)/2:y=(1080-h)/2[combined];" +
		"[speaker][combined]overlay=x=0:y=0:enable='gte(t,5)*lt(t,20)+gte(t,30)'[v]"
	if got := plan.Graph.String(); got != wantGraph {
		t.Fatalf("graph mismatch\nwant %s\ngot  %s", wantGraph, got)
	}

	for _, arg := range []string{"-filter_complex", "[v]", "0:a"} {
		if !slices.Contains(plan.Args, arg) {
			t.Fatalf("args missing %q: %v", arg, plan.Args)
		}
	}
	if !strings.HasPrefix(plan.Command, "ffmpeg ") {
		t.Fatalf("command = %q", plan.Command)
	}
	if plan.ExpectedDuration != 60 {
		t.Fatalf("expected duration = %v", plan.ExpectedDuration)
	}
	if len(plan.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", plan.Warnings)
	}
}

func TestPlanTrimRebasesTimeline(t *testing.T) {
	c := newTestComposer(fixtureProber(), nil)
	req := baseRequest()
	req.Trim = timeline.TrimWindow{Start: 10, End: timeline.At(40)}

	plan, err := c.Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	want := []timeline.Interval{
		{Start: 0, End: timeline.At(10)},
		{Start: 20, End: timeline.At(30)},
	}
	if diff := cmp.Diff(want, plan.Timeline.Intervals); diff != "" {
		t.Fatalf("intervals mismatch (-want +got):\n%s", diff)
	}
	if plan.ExpectedDuration != 30 {
		t.Fatalf("expected duration = %v", plan.ExpectedDuration)
	}
	if !slices.Contains(plan.Args, "-ss") {
		t.Fatalf("trimmed args should seek: %v", plan.Args)
	}
}

func TestPlanWarnsWhenTrimExcludesSharing(t *testing.T) {
	c := newTestComposer(fixtureProber(), nil)
	req := baseRequest()
	req.Trim = timeline.TrimWindow{Start: 22, End: timeline.At(28)}

	plan, err := c.Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if !plan.Timeline.Empty() {
		t.Fatalf("expected no intervals, got %v", plan.Timeline.Intervals)
	}
	if len(plan.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", plan.Warnings)
	}
	if got := plan.Graph.String(); got != "[0:v]null[v]" {
		t.Fatalf("graph = %q", got)
	}
}

func TestPlanWithoutMarkersIsSpeakerOnly(t *testing.T) {
	prober := fixtureProber()
	slides := prober.results["slides.mp4"]
	slides.Chapters = nil
	prober.results["slides.mp4"] = slides
	c := newTestComposer(prober, nil)

	plan, err := c.Plan(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(plan.Warnings) != 0 {
		t.Fatalf("no markers should not warn: %v", plan.Warnings)
	}
	if len(plan.Predicates.Combined) != 0 {
		t.Fatalf("combined ranges = %v", plan.Predicates.Combined)
	}
}

func TestPlanCameraWithoutAudioSkipsAudioMap(t *testing.T) {
	prober := fixtureProber()
	camera := prober.results["camera.mp4"]
	camera.Streams = camera.Streams[:1]
	prober.results["camera.mp4"] = camera
	c := newTestComposer(prober, nil)

	plan, err := c.Plan(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan.CameraHasAudio || slices.Contains(plan.Args, "0:a") {
		t.Fatalf("unexpected audio mapping: %v", plan.Args)
	}
}

func TestPlanErrors(t *testing.T) {
	noVideo := fixtureProber()
	noVideo.results["camera.mp4"] = ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "audio"}}}

	badChapters := fixtureProber()
	slides := badChapters.results["slides.mp4"]
	slides.Chapters = []ffprobe.Chapter{chapter("abc", "Sharing Started")}
	badChapters.results["slides.mp4"] = slides

	tests := []struct {
		name   string
		prober *fakeProber
		mutate func(*Request)
		want   error
	}{
		{"missing camera", fixtureProber(), func(r *Request) { r.Camera = "" }, services.ErrValidation},
		{"same tokens", fixtureProber(), func(r *Request) { r.Tokens.Stop = r.Tokens.Start }, services.ErrConfiguration},
		{"bad layout", fixtureProber(), func(r *Request) { r.Mode = "pip" }, services.ErrConfiguration},
		{"probe failure", &fakeProber{err: services.Wrap(services.ErrExternalTool, "probe", "ffprobe", "camera.mp4", errors.New("exit status 1"))}, nil, services.ErrExternalTool},
		{"camera without video", noVideo, nil, services.ErrConfiguration},
		{"unparseable chapter", badChapters, nil, services.ErrParse},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest()
			if tc.mutate != nil {
				tc.mutate(&req)
			}
			_, err := newTestComposer(tc.prober, nil).Plan(context.Background(), req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRunDryRunSkipsEncode(t *testing.T) {
	runner := &fakeRunner{}
	c := newTestComposer(fixtureProber(), runner)
	req := baseRequest()
	req.DryRun = true

	plan, err := c.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if plan == nil || len(runner.jobs) != 0 {
		t.Fatalf("dry run should not encode, jobs=%d", len(runner.jobs))
	}
}

func TestRunWritesGraphScript(t *testing.T) {
	runner := &fakeRunner{}
	c := newTestComposer(fixtureProber(), runner)
	req := baseRequest()
	req.GraphOut = filepath.Join(t.TempDir(), "graph.txt")

	plan, err := c.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(req.GraphOut)
	if err != nil {
		t.Fatalf("read graph script: %v", err)
	}
	if string(data) != plan.Graph.Script() {
		t.Fatalf("script mismatch:\n%s", data)
	}
	if len(runner.jobs) != 1 || runner.jobs[0].FilterScript != req.GraphOut {
		t.Fatalf("encode should read the script file, jobs=%+v", runner.jobs)
	}
	if !slices.Contains(plan.Args, "-filter_complex_script") {
		t.Fatalf("args = %v", plan.Args)
	}
}

func TestRunEncodesAndReportsProgress(t *testing.T) {
	runner := &fakeRunner{updates: []ffmpeg.Progress{
		{Frame: 10, OutTime: 1},
		{Frame: 20, OutTime: 2},
		{Frame: 1500, OutTime: 60, Done: true},
	}}
	c := newTestComposer(fixtureProber(), runner)

	if _, err := c.Run(context.Background(), baseRequest()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(runner.jobs) != 1 {
		t.Fatalf("expected one encode, got %d", len(runner.jobs))
	}
	job := runner.jobs[0]
	if job.Output != "out.mp4" || !job.HasAudio || job.OutputLabel != "v" {
		t.Fatalf("unexpected job %+v", job)
	}
}

func TestRunPropagatesEncodeFailure(t *testing.T) {
	boom := services.Wrap(services.ErrExternalTool, "encode", "ffmpeg", "exit status 1", nil)
	c := newTestComposer(fixtureProber(), &fakeRunner{err: boom})

	plan, err := c.Run(context.Background(), baseRequest())
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if plan == nil {
		t.Fatal("plan should be returned alongside the encode error")
	}
}

func TestRunWithoutRunner(t *testing.T) {
	c := newTestComposer(fixtureProber(), nil)
	if _, err := c.Run(context.Background(), baseRequest()); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestProgressAttrsPercent(t *testing.T) {
	attrs := progressAttrs(ffmpeg.Progress{Frame: 5, OutTime: 15}, 60)
	for _, arg := range attrs {
		if attr, ok := arg.(slog.Attr); ok && attr.Key == "percent" {
			if got := attr.Value.String(); got != "25.0" {
				t.Fatalf("percent = %q", got)
			}
			return
		}
	}
	t.Fatalf("percent missing: %v", attrs)
}

func TestIntervalsReport(t *testing.T) {
	prober := fixtureProber()
	c := newTestComposer(prober, nil)

	report, err := c.Intervals(context.Background(), "slides.mp4", timeline.DefaultTokens(), timeline.TrimWindow{Start: 10})
	if err != nil {
		t.Fatalf("Intervals: %v", err)
	}
	if len(prober.calls) != 1 || prober.calls[0] != "slides.mp4" {
		t.Fatalf("expected only the slides to be probed, got %v", prober.calls)
	}
	if len(report.Markers) != 4 || len(report.Source.Intervals) != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	want := []timeline.Interval{
		{Start: 0, End: timeline.At(10)},
		{Start: 20, End: timeline.Open},
	}
	if diff := cmp.Diff(want, report.Timeline.Intervals); diff != "" {
		t.Fatalf("intervals mismatch (-want +got):\n%s", diff)
	}
}
