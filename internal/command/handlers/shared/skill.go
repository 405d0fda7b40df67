// Package shared содержит общие компоненты обработчиков команд:
// загрузку навыка из манифеста, диспетчеризацию запроса и вывод результата.
package shared

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Kargones/voiceskill/internal/config"
	"github.com/Kargones/voiceskill/internal/manifest"
	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
	"github.com/Kargones/voiceskill/internal/pkg/logging"
	"github.com/Kargones/voiceskill/internal/pkg/metrics"
	"github.com/Kargones/voiceskill/internal/skill"
)

// LoadSkill собирает навык из манифеста cfg.SkillFile.
// Логгер и сборщик метрик берутся из контекста команды.
func LoadSkill(ctx context.Context, cfg *config.Config) (*skill.App, error) {
	if cfg == nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad, "конфигурация не может быть nil", nil)
	}
	if cfg.SkillFile == "" {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate, "не указан манифест навыка (VS_SKILL_FILE)", nil)
	}

	m, err := manifest.LoadFile(cfg.SkillFile)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	app, err := m.Build(
		skill.WithLogger(logger),
		skill.WithMetrics(metrics.FromContext(ctx)),
	)
	if err != nil {
		return nil, fmt.Errorf("манифест %s: %w", cfg.SkillFile, err)
	}

	logger.Debug("навык загружен",
		slog.String("skill", app.Name()),
		slog.String("file", cfg.SkillFile),
		slog.Int("intents", app.Registry().Len()),
	)
	return app, nil
}
