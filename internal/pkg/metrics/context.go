package metrics

import "context"

type ctxKey struct{}

// NewContext возвращает контекст, несущий collector.
func NewContext(ctx context.Context, c Collector) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext возвращает collector из контекста или NopCollector.
func FromContext(ctx context.Context) Collector {
	if ctx != nil {
		if c, ok := ctx.Value(ctxKey{}).(Collector); ok && c != nil {
			return c
		}
	}
	return NewNopCollector()
}
