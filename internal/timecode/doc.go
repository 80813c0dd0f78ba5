// Package timecode parses and formats the human time strings accepted on the
// command line and the decimal timestamps ffprobe reports for chapters.
//
// Accepted inputs are HH:MM:SS, MM:SS, and bare seconds; the seconds field
// may carry a fractional part. All failures are tagged with services.ErrParse
// and name the offending value.
package timecode
