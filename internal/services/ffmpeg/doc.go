// Package ffmpeg renders composition jobs into ffmpeg invocations and runs
// them.
//
// BuildArgs is pure and produces the exact argument vector used for both dry
// runs and real encodes. Encoder executes ffmpeg under an advisory lock on
// the output path and streams machine-readable progress from -progress
// pipe:1 to an optional callback. Tests swap commandContext to avoid
// launching the real binary.
package ffmpeg
