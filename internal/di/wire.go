//go:build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/Kargones/voiceskill/internal/config"
)

//go:generate wire

// ProviderSet объединяет все провайдеры приложения.
//
// При добавлении новых провайдеров:
// 1. Создать функцию провайдера в providers.go
// 2. Добавить её в ProviderSet
// 3. Перегенерировать: go generate ./internal/di/...
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideOutputWriter,
	ProvideTraceID,
	ProvideMetricsCollector,
	ProvideTracerProvider,
	wire.Struct(new(App), "*"),
)

// InitializeApp создаёт App через Wire DI.
// Принимает Config, загруженный через config.MustLoad().
func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
