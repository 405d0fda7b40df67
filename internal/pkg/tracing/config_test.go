package tracing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Enabled:      true,
		Endpoint:     "http://jaeger:4318",
		ServiceName:  "voiceskill",
		Timeout:      5 * time.Second,
		SamplingRate: 1.0,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"валидная конфигурация", func(c *Config) {}, nil},
		{"выключенный трейсинг всегда валиден", func(c *Config) { *c = Config{} }, nil},
		{"без endpoint", func(c *Config) { c.Endpoint = "" }, ErrTracingEndpointRequired},
		{"endpoint без host", func(c *Config) { c.Endpoint = "jaeger" }, ErrTracingEndpointInvalidFormat},
		{"без service name", func(c *Config) { c.ServiceName = "" }, ErrTracingServiceNameRequired},
		{"нулевой timeout", func(c *Config) { c.Timeout = 0 }, ErrTracingTimeoutInvalid},
		{"sampling rate меньше 0", func(c *Config) { c.SamplingRate = -0.1 }, ErrTracingSamplingRateInvalid},
		{"sampling rate больше 1", func(c *Config) { c.SamplingRate = 1.5 }, ErrTracingSamplingRateInvalid},
		{"sampling rate 0", func(c *Config) { c.SamplingRate = 0 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfig_Validate_SamplingRateMessage(t *testing.T) {
	cfg := validConfig()
	cfg.SamplingRate = 1.5
	assert.Contains(t, cfg.Validate().Error(), "получено: 1.5")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled, "трейсинг выключен по умолчанию")
	assert.Equal(t, "voiceskill", cfg.ServiceName)
	assert.False(t, cfg.Insecure)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 0.1, cfg.SamplingRate)
	assert.NoError(t, cfg.Validate())
}
