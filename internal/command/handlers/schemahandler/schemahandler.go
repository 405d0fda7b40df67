// Package schemahandler реализует команды вывода схемы интентов навыка:
// intent-schema, skill-builder-schema и utterances.
package schemahandler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Kargones/voiceskill/internal/command"
	"github.com/Kargones/voiceskill/internal/command/handlers/shared"
	"github.com/Kargones/voiceskill/internal/config"
	"github.com/Kargones/voiceskill/internal/constants"
	"github.com/Kargones/voiceskill/internal/intent"
	"github.com/Kargones/voiceskill/internal/pkg/logging"
	"github.com/Kargones/voiceskill/internal/pkg/output"
	"github.com/Kargones/voiceskill/internal/schema"
)

// RegisterCmd регистрирует команды схемы в глобальном реестре.
// Команда schema — устаревший алиас intent-schema.
func RegisterCmd() {
	command.RegisterWithAlias(&Handler{dialect: schema.DialectIntent}, constants.ActSchema)
	command.Register(&Handler{dialect: schema.DialectSkillBuilder})
	command.Register(&UtterancesHandler{})
}

// Handler выводит схему интентов в одном из диалектов.
type Handler struct {
	dialect schema.Dialect
}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	if h.dialect == schema.DialectSkillBuilder {
		return constants.ActSkillBuilderSchema
	}
	return constants.ActIntentSchema
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	if h.dialect == schema.DialectSkillBuilder {
		return "Схема интентов для конструктора навыков (samples у интентов и слотов)"
	}
	return "Схема интентов навыка (intent schema)"
}

// Execute собирает навык из манифеста и выводит схему.
// В текстовом формате выводится только документ схемы.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	name := h.Name()
	log := logging.FromContext(ctx).With(slog.String("command", name))

	app, err := shared.LoadSkill(ctx, cfg)
	if err != nil {
		return shared.HandleError(ctx, cfg, name, start, err)
	}

	doc, err := app.Schema(h.dialect)
	if err != nil {
		return shared.HandleError(ctx, cfg, name, start, err)
	}
	if cfg.ValidateSchema {
		if err := schema.Validate(h.dialect, doc); err != nil {
			log.Error("схема не прошла проверку", slog.String("error", err.Error()))
			return shared.HandleError(ctx, cfg, name, start, err)
		}
	}

	log.Info("схема собрана",
		slog.String("skill", app.Name()),
		slog.String("dialect", string(h.dialect)),
		slog.Int("intents", app.Registry().Len()),
	)

	if !shared.IsJSON(cfg) {
		_, err := fmt.Fprintf(os.Stdout, "%s\n", doc)
		return err
	}
	return shared.WriteResult(ctx, cfg, name, start, json.RawMessage(doc), buildSummary(app.Registry().Intents()))
}

// buildSummary считает интенты и слоты схемы.
// Интент без примеров фраз даёт предупреждение.
func buildSummary(intents []intent.Intent) *output.SummaryInfo {
	summary := output.NewSummaryInfo()
	slots := 0
	for _, in := range intents {
		slots += len(in.Slots)
		if len(in.Utterances) == 0 && !isBuiltin(in.Name) {
			summary.AddWarning(fmt.Sprintf("интент %s без примеров фраз", in.Name))
		}
	}
	summary.AddMetric("Интентов", strconv.Itoa(len(intents)), "")
	summary.AddMetric("Слотов", strconv.Itoa(slots), "")
	return summary
}

// isBuiltin сообщает, является ли интент встроенным интентом платформы.
// Встроенным интентам примеры фраз не нужны.
func isBuiltin(name string) bool {
	return strings.HasPrefix(name, "AMAZON.")
}

// UtterancesHandler выводит примеры фраз навыка.
type UtterancesHandler struct{}

// Name возвращает имя команды.
func (h *UtterancesHandler) Name() string {
	return constants.ActUtterances
}

// Description возвращает описание команды для вывода в help.
func (h *UtterancesHandler) Description() string {
	return "Примеры фраз навыка в формате \"ИмяИнтента фраза\""
}

// UtterancesData — результат команды utterances в JSON формате.
type UtterancesData struct {
	Skill      string   `json:"skill"`
	Utterances []string `json:"utterances"`
}

// Execute собирает навык из манифеста и выводит примеры фраз.
func (h *UtterancesHandler) Execute(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	name := h.Name()

	app, err := shared.LoadSkill(ctx, cfg)
	if err != nil {
		return shared.HandleError(ctx, cfg, name, start, err)
	}
	text := app.Utterances()

	if !shared.IsJSON(cfg) {
		_, err := fmt.Fprint(os.Stdout, text)
		return err
	}

	data := &UtterancesData{Skill: app.Name(), Utterances: []string{}}
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			data.Utterances = append(data.Utterances, line)
		}
	}
	summary := output.NewSummaryInfo()
	summary.AddMetric("Фраз", strconv.Itoa(len(data.Utterances)), "")
	return shared.WriteResult(ctx, cfg, name, start, data, summary)
}
