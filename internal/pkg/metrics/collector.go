// Package metrics собирает метрики обработки запросов навыка и отправляет
// их в Prometheus Pushgateway.
//
// NewCollector выбирает реализацию по конфигурации: PrometheusCollector
// при включённых метриках, NopCollector иначе.
package metrics

import (
	"context"
	"time"
)

// Collector определяет интерфейс для сбора метрик диспетчеризации.
type Collector interface {
	// RecordDispatchStart увеличивает gauge запросов в обработке.
	RecordDispatchStart(skill, intent string)

	// RecordDispatchEnd записывает завершение обработки запроса.
	// intent пустой для LaunchRequest и SessionEndedRequest.
	RecordDispatchEnd(skill, intent string, duration time.Duration, success bool)

	// Push отправляет метрики в Pushgateway.
	// Ошибки отправки логируются, метод всегда возвращает nil.
	Push(ctx context.Context) error
}
