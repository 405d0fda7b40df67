package metrics

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Kargones/voiceskill/internal/pkg/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	retry "github.com/sethvargo/go-retry"
)

const namespace = "voiceskill"

// PrometheusCollector реализует Collector с Prometheus метриками.
// Метрики хранятся в собственном registry и отправляются в Pushgateway в Push().
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry

	dispatchDuration *prometheus.HistogramVec
	dispatchSuccess  *prometheus.CounterVec
	dispatchError    *prometheus.CounterVec
	inFlight         *prometheus.GaugeVec

	instance string
}

// NewPrometheusCollector создаёт PrometheusCollector. Регистрирует метрики:
//   - voiceskill_dispatch_duration_seconds (histogram)
//   - voiceskill_dispatch_success_total (counter)
//   - voiceskill_dispatch_error_total (counter)
//   - voiceskill_dispatch_in_flight (gauge)
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для metrics instance label, используется 'unknown'",
				"error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	registry := prometheus.NewRegistry()

	// Обработчики навыка отвечают за миллисекунды, долгие асинхронные — за секунды.
	dispatchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Duration of request dispatch in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"skill", "intent", "status"},
	)

	dispatchSuccess := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_success_total",
			Help:      "Total number of successfully handled requests",
		},
		[]string{"skill", "intent"},
	)

	dispatchError := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_error_total",
			Help:      "Total number of rejected requests",
		},
		[]string{"skill", "intent"},
	)

	inFlight := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dispatch_in_flight",
			Help:      "Number of requests being handled",
		},
		[]string{"skill"},
	)

	collectors := []prometheus.Collector{dispatchDuration, dispatchSuccess, dispatchError, inFlight}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}

	return &PrometheusCollector{
		config:           config,
		logger:           logger,
		registry:         registry,
		dispatchDuration: dispatchDuration,
		dispatchSuccess:  dispatchSuccess,
		dispatchError:    dispatchError,
		inFlight:         inFlight,
		instance:         instance,
	}, nil
}

// maxLabelLength — максимальная длина значения label.
const maxLabelLength = 128

// sanitizeLabel заменяет контрольные символы и обрезает значение по рунам.
// Имя интента приходит из запроса платформы и не доверенно.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)

	runes := []rune(clean)
	if len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

// RecordDispatchStart увеличивает gauge запросов в обработке.
func (c *PrometheusCollector) RecordDispatchStart(skill, intent string) {
	c.inFlight.WithLabelValues(sanitizeLabel(skill)).Inc()
	c.logger.Debug("metrics: dispatch started", "skill", skill, "intent", intent)
}

// RecordDispatchEnd обновляет histogram длительности и counter success/error.
func (c *PrometheusCollector) RecordDispatchEnd(skill, intent string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}

	skill = sanitizeLabel(skill)
	intent = sanitizeLabel(intent)

	c.inFlight.WithLabelValues(skill).Dec()
	c.dispatchDuration.WithLabelValues(skill, intent, status).Observe(duration.Seconds())
	if success {
		c.dispatchSuccess.WithLabelValues(skill, intent).Inc()
	} else {
		c.dispatchError.WithLabelValues(skill, intent).Inc()
	}

	c.logger.Debug("metrics: dispatch ended",
		"skill", skill,
		"intent", intent,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// Push отправляет метрики в Pushgateway с повторами по Fibonacci backoff.
// Ошибка метрик не критична: она логируется, метод возвращает nil.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if c.config.PushgatewayURL == "" {
		c.logger.Debug("metrics: pushgateway URL not configured, skipping push")
		return nil
	}

	select {
	case <-ctx.Done():
		c.logger.Debug("metrics push отменён")
		return nil
	default:
	}

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	attempt := 0
	pushOnce := func(ctx context.Context) error {
		attempt++
		pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
		if err := pusher.PushContext(pushCtx); err != nil {
			c.logger.Warn("попытка отправки метрик не удалась",
				"attempt", attempt,
				"error", err.Error(),
			)
			return retry.RetryableError(err)
		}
		return nil
	}

	var err error
	if c.config.PushRetries == 0 {
		err = pushOnce(ctx)
	} else {
		b := retry.WithMaxRetries(c.config.PushRetries, retry.NewFibonacci(c.config.RetryBackoff))
		err = retry.Do(ctx, b, pushOnce)
	}
	if err != nil {
		c.logger.Error("ошибка отправки метрик в Pushgateway",
			"error", err.Error(),
			"url", maskURL(c.config.PushgatewayURL),
			"job", c.config.JobName,
			"attempts", attempt,
		)
		return nil
	}

	c.logger.Info("метрики отправлены в Pushgateway",
		"url", maskURL(c.config.PushgatewayURL),
		"job", c.config.JobName,
		"instance", c.instance,
	)
	return nil
}

// Registry возвращает внутренний registry. Используется в тестах.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}

// maskURL оставляет в URL только scheme и host.
// Path и query Pushgateway могут содержать токены.
func maskURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "***invalid-url***"
	}
	return u.Scheme + "://" + u.Host + "/***"
}
