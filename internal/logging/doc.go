// Package logging builds the slog loggers used by sharecut.
//
// Two handlers are available: a compact console format (timestamp, level,
// component prefix, then key=value pairs) and JSON for machine consumption.
// Helpers standardize field names so every component logs run IDs, stages,
// and decisions the same way. NewNop is the fallback for tests and for
// callers that have no logger.
package logging
