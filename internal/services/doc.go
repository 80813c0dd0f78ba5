// Package services defines shared utilities consumed by the compose pipeline
// and the wrappers around external tools (ffprobe, ffmpeg).
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that classify failures as
//     parse, configuration, validation, or external-tool problems.
//   - ExitCode, which maps those markers onto process exit statuses for the CLI.
//   - Context helpers that stamp run identifiers and stage names for logging.
//
// Use these helpers when wiring new pipeline steps so error reporting stays
// uniform: every failure names its kind, the stage that produced it, and the
// offending value.
package services
