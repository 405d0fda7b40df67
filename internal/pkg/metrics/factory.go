package metrics

import (
	"github.com/Kargones/voiceskill/internal/pkg/logging"
)

// NewCollector создаёт Collector на основе конфигурации.
// При Config.Enabled = false возвращает NopCollector.
func NewCollector(config Config, logger logging.Logger) (Collector, error) {
	if !config.Enabled {
		return NewNopCollector(), nil
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return NewPrometheusCollector(config, logger)
}
