package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"sharecut/internal/config"
	"sharecut/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckReadableFile verifies that path is a regular file the process can read.
func CheckReadableFile(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", path)}
}

// CheckOutputTarget verifies the output's directory is writable and that the
// output does not overwrite one of the inputs.
func CheckOutputTarget(output string, inputs ...string) Result {
	const name = "Output"
	abs, err := filepath.Abs(output)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", output, err)}
	}
	for _, input := range inputs {
		if inAbs, err := filepath.Abs(input); err == nil && inAbs == abs {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: same file as input)", output)}
		}
	}
	dir := CheckDirectoryAccess(name, filepath.Dir(abs))
	if !dir.Passed {
		return dir
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (directory writable)", abs)}
}

// CheckSystemDeps evaluates the binaries and ffmpeg filters for cfg.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	statuses := deps.CheckBinaries(ctx, deps.MediaRequirements(cfg.FFmpeg.Binary, cfg.FFmpeg.FFprobeBinary))
	if len(statuses) > 0 && statuses[0].Available {
		statuses = append(statuses, deps.CheckFilters(ctx, statuses[0].Path, deps.CompositingFilters))
	}
	return statuses
}
