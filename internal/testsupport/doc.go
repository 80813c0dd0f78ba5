// Package testsupport provides fixtures shared by package tests: quiet
// configs and stub ffmpeg/ffprobe executables.
package testsupport
