// Package command предоставляет интерфейс обработчика и реестр команд CLI.
// Команды регистрируются в реестре из init() своих пакетов, main.go
// подключает их blank-импортом.
package command

import (
	"context"

	"github.com/Kargones/voiceskill/internal/config"
)

// Handler определяет интерфейс обработчика команды.
type Handler interface {
	// Name возвращает имя команды для регистрации в реестре.
	// Должно совпадать с константой из internal/constants.
	Name() string

	// Description возвращает описание команды для вывода в help.
	Description() string

	// Execute выполняет команду с переданным контекстом и конфигурацией.
	Execute(ctx context.Context, cfg *config.Config) error
}
