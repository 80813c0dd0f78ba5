// Package composer runs the end-to-end pipeline for one recording pair.
//
// Plan probes both inputs, extracts sharing intervals from the slides'
// chapter markers, clips them to the trim window, partitions playback time
// into speaker and combined views, plans the layout, and compiles the filter
// graph and ffmpeg command. It never writes files. Run executes a plan: it
// writes the optional filter script, then encodes unless the request is a
// dry run.
//
// Probing and encoding go through the Prober and Runner interfaces so tests
// can drive the whole pipeline without ffmpeg installed.
package composer
