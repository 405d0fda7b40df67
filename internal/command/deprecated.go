package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Kargones/voiceskill/internal/config"
)

// Deprecatable опционально реализуется устаревшими обработчиками.
// Используется командой help.
type Deprecatable interface {
	// IsDeprecated возвращает true если команда устарела.
	IsDeprecated() bool
	// NewName возвращает рекомендуемое имя команды.
	NewName() string
}

var (
	_ Handler      = (*DeprecatedBridge)(nil)
	_ Deprecatable = (*DeprecatedBridge)(nil)
)

// warnOutput — куда выводится предупреждение об устаревшем имени.
// stdout не используется: там JSON вывод команд.
var warnOutput io.Writer = os.Stderr

// DeprecatedBridge выполняет обработчик под устаревшим именем команды,
// предупреждая о новом имени при каждом вызове.
type DeprecatedBridge struct {
	actual     Handler
	deprecated string
	newName    string
}

// Name возвращает устаревшее имя команды.
func (b *DeprecatedBridge) Name() string {
	return b.deprecated
}

// Description делегирует вызов actual handler.
func (b *DeprecatedBridge) Description() string {
	return b.actual.Description()
}

// IsDeprecated всегда возвращает true.
func (b *DeprecatedBridge) IsDeprecated() bool {
	return true
}

// NewName возвращает рекомендуемое имя команды.
func (b *DeprecatedBridge) NewName() string {
	return b.newName
}

// Execute выводит предупреждение и выполняет actual handler.
// Если контекст уже отменён, возвращает ctx.Err() без предупреждения.
func (b *DeprecatedBridge) Execute(ctx context.Context, cfg *config.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fmt.Fprintf(warnOutput, "WARNING: command '%s' is deprecated, use '%s' instead\n",
		b.deprecated, b.newName)
	if cfg != nil && cfg.Logger != nil {
		cfg.Logger.Warn("вызвана устаревшая команда",
			slog.String("command", b.deprecated),
			slog.String("new_name", b.newName),
		)
	}
	return b.actual.Execute(ctx, cfg)
}
