package di

import (
	"context"

	"github.com/Kargones/voiceskill/internal/config"
	"github.com/Kargones/voiceskill/internal/pkg/logging"
	"github.com/Kargones/voiceskill/internal/pkg/metrics"
	"github.com/Kargones/voiceskill/internal/pkg/output"
)

// App содержит инициализированные зависимости приложения.
// Создаётся через Wire DI в InitializeApp().
//
// При добавлении новых зависимостей:
// 1. Добавить поле в App struct
// 2. Создать провайдер в providers.go
// 3. Добавить провайдер в ProviderSet в wire.go
// 4. Перегенерировать wire_gen.go: go generate ./internal/di/...
type App struct {
	// Config содержит конфигурацию запуска. Передаётся извне.
	Config *config.Config

	// Logger предоставляет структурированное логирование.
	Logger logging.Logger

	// OutputWriter форматирует результаты команд.
	OutputWriter output.Writer

	// TraceID коррелирует логи одного запуска.
	TraceID string

	// MetricsCollector собирает метрики обработки запросов навыком.
	// Если метрики отключены — NopCollector.
	MetricsCollector metrics.Collector

	// TracerShutdown завершает OTel TracerProvider и отправляет буферизированные span-ы.
	// Если трейсинг отключён — nop function.
	TracerShutdown func(context.Context) error
}

// Shutdown отправляет метрики и завершает трейсинг.
// Ошибка завершения трейсинга логируется.
func (a *App) Shutdown(ctx context.Context) {
	if err := a.MetricsCollector.Push(ctx); err != nil {
		a.Logger.Warn("не удалось отправить метрики", "error", err.Error())
	}
	if err := a.TracerShutdown(ctx); err != nil {
		a.Logger.Warn("ошибка завершения tracing", "error", err.Error())
	}
}
