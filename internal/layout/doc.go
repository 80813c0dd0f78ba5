// Package layout computes output geometry for the speaker-only and combined
// views.
//
// ParseDimensions and ParseMode normalize user input; Plan turns a mode, the
// camera's native resolution, and an optional explicit output size into a
// Geometry with three named regions (full, primary, secondary). The primary
// region always holds the slides and the secondary region the camera.
//
// Background describes the base layer painted underneath both views.
package layout
