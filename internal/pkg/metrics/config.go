package metrics

import (
	"net/url"
	"time"
)

// Config содержит настройки сбора и отправки метрик.
type Config struct {
	// Enabled — включены ли метрики (по умолчанию false).
	Enabled bool

	// PushgatewayURL — URL Prometheus Pushgateway, например "http://pushgateway:9091".
	PushgatewayURL string

	// JobName — имя job для группировки метрик. По умолчанию "voiceskill".
	JobName string

	// Timeout — таймаут одной попытки push. По умолчанию 10 секунд.
	Timeout time.Duration

	// PushRetries — число повторов push после первой неудачной попытки.
	// 0 отключает повторы.
	PushRetries uint64

	// RetryBackoff — начальная задержка Fibonacci backoff между попытками.
	RetryBackoff time.Duration

	// InstanceLabel — переопределение instance label. Если пусто — hostname.
	InstanceLabel string
}

// Validate проверяет корректность конфигурации.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.PushgatewayURL == "" {
		return ErrPushgatewayURLRequired
	}

	u, err := url.Parse(c.PushgatewayURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrPushgatewayURLInvalid
	}

	if c.JobName == "" {
		return ErrJobNameRequired
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.PushRetries > 0 && c.RetryBackoff <= 0 {
		return ErrInvalidBackoff
	}

	return nil
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		JobName:      "voiceskill",
		Timeout:      10 * time.Second,
		PushRetries:  3,
		RetryBackoff: 500 * time.Millisecond,
	}
}
