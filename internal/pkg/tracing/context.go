package tracing

import "context"

type traceIDKey struct{}

// WithTraceID возвращает context с trace ID. Предыдущее значение перезаписывается.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// TraceIDFromContext извлекает trace ID из context.
// Пустая строка, если trace ID не установлен или ctx == nil.
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}
