package config

import (
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/voiceskill/internal/constants"
	"github.com/Kargones/voiceskill/internal/pkg/tracing"
)

// TracingConfig содержит настройки OpenTelemetry трейсинга.
type TracingConfig struct {
	// Enabled включает отправку трейсов в OTLP бэкенд.
	Enabled bool `yaml:"enabled" env:"VS_TRACING_ENABLED" env-default:"false"`

	// Endpoint — URL OTLP HTTP endpoint (например, http://jaeger:4318).
	Endpoint string `yaml:"endpoint" env:"VS_TRACING_ENDPOINT"`

	// ServiceName — имя сервиса для resource attributes.
	ServiceName string `yaml:"serviceName" env:"VS_TRACING_SERVICE_NAME" env-default:"voiceskill"`

	// Environment — окружение (production, staging, development).
	Environment string `yaml:"environment" env:"VS_TRACING_ENVIRONMENT" env-default:"production"`

	// Insecure — использовать HTTP вместо HTTPS для OTLP endpoint.
	Insecure bool `yaml:"insecure" env:"VS_TRACING_INSECURE" env-default:"true"`

	// Timeout — таймаут для экспорта трейсов.
	Timeout time.Duration `yaml:"timeout" env:"VS_TRACING_TIMEOUT" env-default:"5s"`

	// SamplingRate — доля сэмплируемых трейсов (0.0 — ни один, 1.0 — все).
	SamplingRate float64 `yaml:"samplingRate" env:"VS_TRACING_SAMPLING_RATE" env-default:"1.0"`
}

// ToTracing преобразует настройки в tracing.Config.
func (tc *TracingConfig) ToTracing() tracing.Config {
	return tracing.Config{
		Enabled:      tc.Enabled,
		Endpoint:     tc.Endpoint,
		ServiceName:  tc.ServiceName,
		Version:      constants.Version,
		Environment:  tc.Environment,
		Insecure:     tc.Insecure,
		Timeout:      tc.Timeout,
		SamplingRate: tc.SamplingRate,
	}
}

// isTracingConfigPresent проверяет, задана ли конфигурация трейсинга.
func isTracingConfigPresent(cfg *TracingConfig) bool {
	if cfg == nil {
		return false
	}
	return cfg.Enabled || cfg.Endpoint != ""
}

// getDefaultTracingConfig возвращает конфигурацию трейсинга по умолчанию.
// Трейсинг отключён по умолчанию.
func getDefaultTracingConfig() *TracingConfig {
	return &TracingConfig{
		Enabled:      false,
		ServiceName:  "voiceskill",
		Environment:  "production",
		Insecure:     true,
		Timeout:      5 * time.Second,
		SamplingRate: 1.0,
	}
}

// validateTracingConfig проверяет конфигурацию трейсинга при загрузке.
func validateTracingConfig(tc *TracingConfig) error {
	c := tc.ToTracing()
	return c.Validate()
}

// loadTracingConfig загружает конфигурацию трейсинга из AppConfig или значений по умолчанию.
// Переменные окружения VS_TRACING_* переопределяют значения из AppConfig.
func loadTracingConfig(l *slog.Logger, cfg *Config) *TracingConfig {
	if cfg.AppConfig != nil && isTracingConfigPresent(&cfg.AppConfig.Tracing) {
		tracingConfig := &cfg.AppConfig.Tracing
		if err := cleanenv.ReadEnv(tracingConfig); err != nil {
			l.Warn("Ошибка загрузки Tracing конфигурации из переменных окружения",
				slog.String("error", err.Error()),
			)
		}
		l.Debug("Tracing конфигурация загружена из AppConfig",
			slog.Bool("enabled", tracingConfig.Enabled),
			slog.String("endpoint", tracingConfig.Endpoint),
			slog.String("service_name", tracingConfig.ServiceName),
		)
		return tracingConfig
	}

	tracingConfig := getDefaultTracingConfig()
	if err := cleanenv.ReadEnv(tracingConfig); err != nil {
		l.Warn("Ошибка загрузки Tracing конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}
	l.Debug("Tracing конфигурация: используются значения по умолчанию",
		slog.Bool("enabled", tracingConfig.Enabled),
	)
	return tracingConfig
}
