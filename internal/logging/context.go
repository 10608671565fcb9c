package logging

import (
	"context"

	"go.uber.org/zap"
)

// Context key types
type runCtxKey struct{}
type ticketCtxKey struct{}
type loggerCtxKey struct{}

// ContextFields extracts correlation data from context.
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 2)

	if runID := RunIDFromContext(ctx); runID != "" {
		fields = append(fields, zap.String("run_id", runID))
	}
	if ticket, ok := TicketFromContext(ctx); ok {
		fields = append(fields, zap.Int("ticket", ticket))
	}

	return fields
}

// WithRunID adds a run correlation ID to context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runCtxKey{}, runID)
}

// RunIDFromContext extracts the run ID from context.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runCtxKey{}).(string); ok {
		return id
	}
	return ""
}

// WithTicket adds the ticket number being processed to context.
func WithTicket(ctx context.Context, number int) context.Context {
	return context.WithValue(ctx, ticketCtxKey{}, number)
}

// TicketFromContext extracts the ticket number from context.
func TicketFromContext(ctx context.Context) (int, bool) {
	n, ok := ctx.Value(ticketCtxKey{}).(int)
	return n, ok
}

// WithLogger stores logger in context.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// FromContext retrieves logger from context.
// Returns a nop logger if not found.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*Logger); ok {
		return l
	}
	return Nop()
}
