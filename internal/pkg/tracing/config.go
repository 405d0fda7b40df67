package tracing

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Ошибки валидации конфигурации трейсинга.
var (
	// ErrTracingEndpointRequired — endpoint обязателен при включённом трейсинге.
	ErrTracingEndpointRequired = errors.New("tracing: endpoint обязателен когда tracing включён")

	// ErrTracingServiceNameRequired — service name обязателен.
	ErrTracingServiceNameRequired = errors.New("tracing: service name обязателен")

	// ErrTracingTimeoutInvalid — timeout должен быть положительным.
	ErrTracingTimeoutInvalid = errors.New("tracing: timeout должен быть положительным")

	// ErrTracingEndpointInvalidFormat — endpoint имеет невалидный URL формат.
	ErrTracingEndpointInvalidFormat = errors.New("tracing: endpoint должен быть валидным URL с host (например http://jaeger:4318)")

	// ErrTracingSamplingRateInvalid — sampling rate вне диапазона [0.0, 1.0].
	ErrTracingSamplingRateInvalid = errors.New("tracing: sampling rate должен быть от 0.0 до 1.0")
)

// Config содержит настройки TracerProvider. Спан создаётся на каждую
// диспетчеризацию запроса навыка.
type Config struct {
	// Enabled — включён ли трейсинг.
	Enabled bool

	// Endpoint — URL OTLP HTTP endpoint, например "http://jaeger:4318".
	Endpoint string

	// ServiceName — имя сервиса для resource attributes.
	ServiceName string

	// Version — версия сервиса для resource attributes.
	Version string

	// Environment — окружение (production, staging, development).
	Environment string

	// Insecure — использовать HTTP вместо HTTPS.
	Insecure bool

	// Timeout — таймаут для экспорта трейсов.
	Timeout time.Duration

	// SamplingRate — доля сэмплируемых трейсов (0.0 — ни один, 1.0 — все).
	SamplingRate float64
}

// Validate проверяет корректность конфигурации.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Endpoint == "" {
		return ErrTracingEndpointRequired
	}
	if u, err := url.Parse(c.Endpoint); err != nil || u.Host == "" {
		return ErrTracingEndpointInvalidFormat
	}
	if c.ServiceName == "" {
		return ErrTracingServiceNameRequired
	}
	if c.Timeout <= 0 {
		return ErrTracingTimeoutInvalid
	}
	if c.SamplingRate < 0.0 || c.SamplingRate > 1.0 {
		return fmt.Errorf("%w, получено: %g", ErrTracingSamplingRateInvalid, c.SamplingRate)
	}
	return nil
}

// DefaultConfig возвращает конфигурацию по умолчанию (трейсинг выключен).
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		ServiceName:  "voiceskill",
		Environment:  "production",
		Insecure:     false,
		Timeout:      5 * time.Second,
		SamplingRate: 0.1,
	}
}
