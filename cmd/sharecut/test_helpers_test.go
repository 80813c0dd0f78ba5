package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sharecut/internal/testsupport"
)

const cameraProbe = `{"streams":[{"index":0,"codec_type":"video","width":1920,"height":1080},{"index":1,"codec_type":"audio"}],"chapters":[],"format":{"duration":"60.000000"}}`

const slidesProbe = `{"streams":[{"index":0,"codec_type":"video","width":1920,"height":1080}],"chapters":[
{"id":0,"start_time":"0.000000","end_time":"5.000000","tags":{"title":"Intro"}},
{"id":1,"start_time":"5.000000","end_time":"20.000000","tags":{"title":"Sharing Started"}},
{"id":2,"start_time":"20.000000","end_time":"30.000000","tags":{"title":"Sharing Stopped"}},
{"id":3,"start_time":"30.000000","end_time":"60.000000","tags":{"title":"Sharing Started"}}
],"format":{"duration":"60.000000"}}`

type cliTestEnv struct {
	dir        string
	configPath string
	ffprobe    string
	ffmpeg     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	dir := t.TempDir()
	home := filepath.Join(dir, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	for _, key := range []string{"SHARECUT_FFMPEG", "SHARECUT_FFPROBE", "SHARECUT_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	t.Chdir(dir)

	testsupport.WriteFile(t, filepath.Join(dir, "camera.json"), cameraProbe)
	testsupport.WriteFile(t, filepath.Join(dir, "slides.json"), slidesProbe)
	testsupport.WriteFile(t, filepath.Join(dir, "filters.txt"), testsupport.FilterListing)
	for _, name := range []string{"camera.mp4", "slides.mp4"} {
		testsupport.WriteFile(t, filepath.Join(dir, name), "")
	}

	env := &cliTestEnv{dir: dir}
	env.ffprobe = testsupport.WriteStub(t, dir, "ffprobe", fmt.Sprintf(`for last; do :; done
case "$last" in
  -version) echo "ffprobe version 7.1" ;;
  *camera*) cat %q ;;
  *) cat %q ;;
esac
`, filepath.Join(dir, "camera.json"), filepath.Join(dir, "slides.json")))
	env.ffmpeg = testsupport.WriteStub(t, dir, "ffmpeg", fmt.Sprintf(`case "$*" in
  *-filters*) cat %q ;;
  *-version*) echo "ffmpeg version 7.1" ;;
  *) exit 1 ;;
esac
`, filepath.Join(dir, "filters.txt")))

	env.configPath = filepath.Join(dir, "sharecut.toml")
	testsupport.WriteFile(t, env.configPath, fmt.Sprintf("[ffmpeg]\nbinary = %q\nffprobe_binary = %q\n\n[logging]\nlevel = \"error\"\n", env.ffmpeg, env.ffprobe))
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
