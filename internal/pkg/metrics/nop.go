package metrics

import (
	"context"
	"time"
)

// NopCollector — no-op реализация Collector.
type NopCollector struct{}

// NewNopCollector создаёт NopCollector.
func NewNopCollector() *NopCollector {
	return &NopCollector{}
}

// RecordDispatchStart — no-op.
func (c *NopCollector) RecordDispatchStart(skill, intent string) {}

// RecordDispatchEnd — no-op.
func (c *NopCollector) RecordDispatchEnd(skill, intent string, duration time.Duration, success bool) {
}

// Push — no-op, всегда возвращает nil.
func (c *NopCollector) Push(ctx context.Context) error {
	return nil
}
