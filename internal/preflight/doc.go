// Package preflight provides readiness checks run before a composition and
// by `sharecut check`.
//
// Checks cover the ffmpeg/ffprobe binaries, the filters composed graphs
// rely on, readable input files, and a writable output directory. A failed
// check is reported, never fatal on its own; callers decide whether to stop.
package preflight
