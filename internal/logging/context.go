package logging

import (
	"context"
	"log/slog"

	"sharecut/internal/services"
)

// Standard structured logging keys.
const (
	FieldComponent      = "component"
	FieldRunID          = "run_id"
	FieldStage          = "stage"
	FieldEventType      = "event_type"
	FieldErrorHint      = "error_hint"
	FieldImpact         = "impact"
	FieldErrorKind      = "error_kind"
	FieldDecisionType   = "decision_type"
	FieldDecisionResult = "decision_result"
	FieldDecisionReason = "decision_reason"
)

// ContextFields extracts standardized slog attributes from ctx.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	return fields
}

// WithContext returns logger tagged with the run ID and stage carried by ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
