// Package handlers регистрирует все команды в глобальном реестре.
// Регистрация явная, без init(): граф зависимостей виден из одного места.
package handlers

import (
	"sync"

	"github.com/Kargones/voiceskill/internal/command/handlers/help"
	"github.com/Kargones/voiceskill/internal/command/handlers/requesthandler"
	"github.com/Kargones/voiceskill/internal/command/handlers/schemahandler"
	"github.com/Kargones/voiceskill/internal/command/handlers/simulatehandler"
	"github.com/Kargones/voiceskill/internal/command/handlers/version"
)

var registerOnce sync.Once

// RegisterAll регистрирует все команды. Повторные вызовы ничего не делают.
// Ошибки регистрации приводят к панике в command.Register.
func RegisterAll() {
	registerOnce.Do(func() {
		help.RegisterCmd()
		version.RegisterCmd()
		schemahandler.RegisterCmd()
		requesthandler.RegisterCmd()
		simulatehandler.RegisterCmd()
	})
}
