package config

import (
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/voiceskill/internal/pkg/metrics"
)

// MetricsConfig содержит настройки для Prometheus метрик.
type MetricsConfig struct {
	// Enabled — включены ли метрики (по умолчанию false).
	Enabled bool `yaml:"enabled" env:"VS_METRICS_ENABLED" env-default:"false"`

	// PushgatewayURL — URL Prometheus Pushgateway, например "http://pushgateway:9091".
	PushgatewayURL string `yaml:"pushgatewayUrl" env:"VS_METRICS_PUSHGATEWAY_URL"`

	// JobName — имя job для группировки метрик.
	JobName string `yaml:"jobName" env:"VS_METRICS_JOB_NAME" env-default:"voiceskill"`

	// Timeout — таймаут одной попытки push.
	Timeout time.Duration `yaml:"timeout" env:"VS_METRICS_TIMEOUT" env-default:"10s"`

	// PushRetries — число повторов push после неудачи.
	PushRetries uint64 `yaml:"pushRetries" env:"VS_METRICS_PUSH_RETRIES" env-default:"3"`

	// RetryBackoff — начальная задержка между повторами push.
	RetryBackoff time.Duration `yaml:"retryBackoff" env:"VS_METRICS_RETRY_BACKOFF" env-default:"500ms"`

	// InstanceLabel — переопределение instance label. Если пусто — hostname.
	InstanceLabel string `yaml:"instanceLabel" env:"VS_METRICS_INSTANCE"`
}

// ToMetrics преобразует настройки в metrics.Config.
func (mc *MetricsConfig) ToMetrics() metrics.Config {
	return metrics.Config{
		Enabled:        mc.Enabled,
		PushgatewayURL: mc.PushgatewayURL,
		JobName:        mc.JobName,
		Timeout:        mc.Timeout,
		PushRetries:    mc.PushRetries,
		RetryBackoff:   mc.RetryBackoff,
		InstanceLabel:  mc.InstanceLabel,
	}
}

// isMetricsConfigPresent проверяет, задана ли конфигурация метрик.
func isMetricsConfigPresent(cfg *MetricsConfig) bool {
	if cfg == nil {
		return false
	}
	return cfg.Enabled || cfg.PushgatewayURL != ""
}

// getDefaultMetricsConfig возвращает конфигурацию метрик по умолчанию.
// Метрики отключены по умолчанию.
func getDefaultMetricsConfig() *MetricsConfig {
	d := metrics.DefaultConfig()
	return &MetricsConfig{
		Enabled:      false,
		JobName:      d.JobName,
		Timeout:      d.Timeout,
		PushRetries:  d.PushRetries,
		RetryBackoff: d.RetryBackoff,
	}
}

// loadMetricsConfig загружает конфигурацию метрик из AppConfig или значений по умолчанию.
// Переменные окружения VS_METRICS_* переопределяют значения из AppConfig.
func loadMetricsConfig(l *slog.Logger, cfg *Config) *MetricsConfig {
	if cfg.AppConfig != nil && isMetricsConfigPresent(&cfg.AppConfig.Metrics) {
		metricsConfig := &cfg.AppConfig.Metrics
		if err := cleanenv.ReadEnv(metricsConfig); err != nil {
			l.Warn("Ошибка загрузки Metrics конфигурации из переменных окружения",
				slog.String("error", err.Error()),
			)
		}
		l.Debug("Metrics конфигурация загружена из AppConfig",
			slog.Bool("enabled", metricsConfig.Enabled),
			slog.String("job_name", metricsConfig.JobName),
		)
		return metricsConfig
	}

	metricsConfig := getDefaultMetricsConfig()
	if err := cleanenv.ReadEnv(metricsConfig); err != nil {
		l.Warn("Ошибка загрузки Metrics конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}
	l.Debug("Metrics конфигурация: используются значения по умолчанию",
		slog.Bool("enabled", metricsConfig.Enabled),
	)
	return metricsConfig
}

// validateMetricsConfig проверяет конфигурацию метрик при загрузке.
func validateMetricsConfig(mc *MetricsConfig) error {
	c := mc.ToMetrics()
	return c.Validate()
}
