// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no sharecut-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams, chapters, and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//   - Chapter: chapter boundaries with their title tags
//   - Format: container-level metadata (duration, size, bitrate)
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns parsed Result
//   - Parse: decodes previously captured ffprobe JSON
//
// Helper methods on Result provide convenient access to stream counts, the
// first video stream, and duration parsing.
package ffprobe
