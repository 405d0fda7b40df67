package di

import (
	"context"
	"log/slog"

	"github.com/Kargones/voiceskill/internal/config"
	"github.com/Kargones/voiceskill/internal/pkg/logging"
	"github.com/Kargones/voiceskill/internal/pkg/metrics"
	"github.com/Kargones/voiceskill/internal/pkg/output"
	"github.com/Kargones/voiceskill/internal/pkg/tracing"
)

// ProvideLogger создаёт Logger на основе LoggingConfig из Config.
// Если LoggingConfig == nil, используются значения logging.DefaultConfig():
// уровень info, текстовый формат, вывод в stderr.
func ProvideLogger(cfg *config.Config) logging.Logger {
	if cfg == nil || cfg.LoggingConfig == nil {
		return logging.NewLogger(logging.DefaultConfig())
	}
	return logging.NewLogger(cfg.LoggingConfig.ToLogging())
}

// ProvideOutputWriter создаёт OutputWriter для формата из Config.
// Пустой формат даёт TextWriter.
func ProvideOutputWriter(cfg *config.Config) output.Writer {
	format := output.FormatText
	if cfg != nil && cfg.OutputFormat != "" {
		format = cfg.OutputFormat
	}
	return output.NewWriter(format)
}

// ProvideTraceID генерирует trace_id запуска: 32-символьный hex.
// Используется для корреляции логов всех команд одного запуска.
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideMetricsCollector создаёт Collector на основе MetricsConfig.
// Если метрики не настроены или отключены, возвращает NopCollector.
// При ошибке создания Collector возвращает NopCollector и логирует ошибку.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil || cfg.MetricsConfig == nil {
		return metrics.NewNopCollector()
	}

	collector, err := metrics.NewCollector(cfg.MetricsConfig.ToMetrics(), logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется NopCollector",
			slog.String("error", err.Error()),
		)
		return metrics.NewNopCollector()
	}
	return collector
}

// ProvideTracerProvider создаёт OTel TracerProvider и возвращает его shutdown.
// Если трейсинг не настроен, отключён или не инициализировался,
// возвращает nop shutdown.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) func(context.Context) error {
	if cfg == nil || cfg.TracingConfig == nil {
		return tracing.NewNopTracerProvider()
	}

	shutdown, err := tracing.NewTracerProvider(cfg.TracingConfig.ToTracing(), logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider",
			slog.String("error", err.Error()),
		)
		return tracing.NewNopTracerProvider()
	}
	return shutdown
}
