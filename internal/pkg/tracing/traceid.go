// Package tracing связывает обработку запроса навыка с trace ID и
// настраивает OpenTelemetry TracerProvider.
//
// Trace ID — 32 hex-символа (16 байт), совместимо с W3C Trace Context:
//
//	"a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"
//
// Запросы платформы несут requestId; TraceIDForRequest выводит из него
// детерминированный trace ID, так что повторная доставка того же запроса
// попадает в тот же трейс.
package tracing

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

var fallbackCounter atomic.Uint64

// GenerateTraceID генерирует случайный trace ID.
// При недоступном crypto/rand возвращает ID из timestamp и счётчика.
func GenerateTraceID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// TraceIDForRequest возвращает trace ID для requestId платформы.
// Пустой requestId даёт случайный trace ID.
func TraceIDForRequest(requestID string) string {
	if requestID == "" {
		return GenerateTraceID()
	}
	sum := sha256.Sum256([]byte(requestID))
	return hex.EncodeToString(sum[:16])
}

// fallbackTraceID всегда возвращает ровно 32 символа: %016x для timestamp и счётчика.
func fallbackTraceID() string {
	counter := fallbackCounter.Add(1)
	timestamp := uint64(time.Now().UnixNano())
	return fmt.Sprintf("%016x%016x", timestamp, counter)
}
