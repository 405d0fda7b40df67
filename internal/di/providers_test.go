package di

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/voiceskill/internal/config"
	"github.com/Kargones/voiceskill/internal/pkg/logging"
	"github.com/Kargones/voiceskill/internal/pkg/metrics"
	"github.com/Kargones/voiceskill/internal/pkg/output"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestProvideLogger(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"nil config", nil},
		{"nil LoggingConfig", &config.Config{}},
		{"text", &config.Config{LoggingConfig: &config.LoggingConfig{Level: "info", Format: "text"}}},
		{"json debug", &config.Config{LoggingConfig: &config.LoggingConfig{Level: "debug", Format: "json"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := ProvideLogger(tt.cfg)
			require.NotNil(t, logger)
			assert.NotPanics(t, func() {
				logger.With("trace_id", "abc").Debug("тестовое сообщение")
			})
		})
	}
}

func TestProvideOutputWriter(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.Config
		wantJSON bool
	}{
		{"nil config", nil, false},
		{"пустой формат", &config.Config{}, false},
		{"text", &config.Config{OutputFormat: output.FormatText}, false},
		{"json", &config.Config{OutputFormat: output.FormatJSON}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ProvideOutputWriter(tt.cfg)
			require.NotNil(t, w)
			_, isJSON := w.(*output.JSONWriter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestProvideTraceID(t *testing.T) {
	seen := make(map[string]struct{})
	for range 50 {
		id := ProvideTraceID()
		assert.Regexp(t, hexPattern, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 50, "trace_id должны быть уникальными")
}

func TestProvideMetricsCollector(t *testing.T) {
	logger := logging.NewNopLogger()
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"nil config", nil},
		{"nil MetricsConfig", &config.Config{}},
		{"отключены", &config.Config{MetricsConfig: &config.MetricsConfig{Enabled: false}}},
		{"невалидная конфигурация", &config.Config{MetricsConfig: &config.MetricsConfig{Enabled: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ProvideMetricsCollector(tt.cfg, logger)
			_, ok := c.(*metrics.NopCollector)
			assert.True(t, ok, "ожидается NopCollector")
		})
	}
}

func TestProvideMetricsCollector_Enabled(t *testing.T) {
	cfg := &config.Config{MetricsConfig: &config.MetricsConfig{
		Enabled:        true,
		PushgatewayURL: "http://localhost:9091",
		JobName:        "voiceskill",
		Timeout:        time.Second,
	}}

	c := ProvideMetricsCollector(cfg, logging.NewNopLogger())
	_, ok := c.(*metrics.PrometheusCollector)
	assert.True(t, ok, "при валидной конфигурации ожидается PrometheusCollector")
}

func TestProvideTracerProvider_Disabled(t *testing.T) {
	logger := logging.NewNopLogger()
	for _, cfg := range []*config.Config{nil, {}, {TracingConfig: &config.TracingConfig{Enabled: false}}} {
		shutdown := ProvideTracerProvider(cfg, logger)
		require.NotNil(t, shutdown)
		assert.NoError(t, shutdown(context.Background()))
	}
}

func TestInitializeApp(t *testing.T) {
	cfg := &config.Config{
		Command:       "version",
		OutputFormat:  output.FormatJSON,
		LoggingConfig: &config.LoggingConfig{Level: "debug", Format: "json"},
	}

	app, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.Same(t, cfg, app.Config)
	assert.NotNil(t, app.Logger)
	assert.NotNil(t, app.MetricsCollector)
	assert.NotNil(t, app.TracerShutdown)
	assert.Regexp(t, hexPattern, app.TraceID)

	var buf bytes.Buffer
	require.NoError(t, app.OutputWriter.Write(&buf, &output.Result{Status: output.StatusSuccess, Command: "version"}))
	assert.Contains(t, buf.String(), `"command": "version"`)

	assert.NotPanics(t, func() { app.Shutdown(context.Background()) })
}

func TestInitializeApp_NilConfig(t *testing.T) {
	app, err := InitializeApp(nil)
	require.NoError(t, err, "nil Config обрабатывается провайдерами через значения по умолчанию")
	require.NotNil(t, app)
	assert.Nil(t, app.Config)
	assert.NotNil(t, app.OutputWriter)
}
