// Package simulatehandler реализует команду simulate: синтез запроса
// платформы из переменных окружения VS_SIMULATE_* и его обработку навыком.
package simulatehandler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kargones/voiceskill/internal/command"
	"github.com/Kargones/voiceskill/internal/command/handlers/shared"
	"github.com/Kargones/voiceskill/internal/config"
	"github.com/Kargones/voiceskill/internal/constants"
	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
	"github.com/Kargones/voiceskill/internal/pkg/logging"
	"github.com/Kargones/voiceskill/internal/pkg/tracing"
	"github.com/Kargones/voiceskill/internal/request"
)

// RegisterCmd регистрирует команду simulate.
func RegisterCmd() {
	command.Register(&Handler{})
}

// Handler обрабатывает команду simulate.
type Handler struct {
	// newID и now подменяются в тестах.
	newID func() string
	now   func() time.Time
}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActSimulate
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Обработка синтезированного запроса (VS_SIMULATE_INTENT, VS_SIMULATE_SLOTS)"
}

// Execute синтезирует запрос и выводит ответ навыка.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	start := time.Now()

	app, err := shared.LoadSkill(ctx, cfg)
	if err != nil {
		return shared.HandleError(ctx, cfg, constants.ActSimulate, start, err)
	}

	newID, now := h.newID, h.now
	if newID == nil {
		newID = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	env, err := BuildRequest(cfg.Simulate, newID, now())
	if err != nil {
		return shared.HandleError(ctx, cfg, constants.ActSimulate, start, err)
	}

	ctx = tracing.WithTraceID(ctx, tracing.TraceIDForRequest(env.Request.RequestID))
	logging.FromContext(ctx).Debug("запрос синтезирован",
		slog.String("type", env.Type()),
		slog.String("intent", env.IntentName()),
		slog.String("request_id", env.Request.RequestID),
	)

	return shared.Dispatch(ctx, cfg, constants.ActSimulate, start, app, env)
}

// BuildRequest синтезирует конверт запроса по параметрам simulate.
// IntentRequest требует имя интента; остальные типы интент игнорируют.
func BuildRequest(sc config.SimulateConfig, newID func() string, now time.Time) (*request.Envelope, error) {
	typ := sc.Type
	if typ == "" {
		typ = request.TypeIntent
	}
	switch typ {
	case request.TypeIntent, request.TypeLaunch, request.TypeSessionEnded:
	default:
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate,
			fmt.Sprintf("неподдерживаемый тип запроса VS_SIMULATE_TYPE: %s", typ), nil)
	}

	locale := sc.Locale
	if locale == "" {
		locale = constants.DefaultLocale
	}

	env := &request.Envelope{
		Version: "1.0",
		Session: &request.Session{
			New:       true,
			SessionID: constants.SimulatedSessionIDPrefix + newID(),
			User: &request.User{
				UserID:      constants.SimulatedUserID,
				AccessToken: sc.AccessToken,
			},
		},
		Request: request.Body{
			Type:      typ,
			RequestID: constants.SimulatedRequestIDPrefix + newID(),
			Timestamp: now.UTC().Format(time.RFC3339),
			Locale:    locale,
		},
	}

	if typ == request.TypeSessionEnded {
		env.Request.Reason = "USER_INITIATED"
	}
	if typ != request.TypeIntent {
		return env, nil
	}

	if sc.Intent == "" {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate,
			"для IntentRequest требуется VS_SIMULATE_INTENT", nil)
	}
	values, err := ParseSlots(sc.Slots)
	if err != nil {
		return nil, err
	}
	in := &request.Intent{Name: sc.Intent}
	if len(values) > 0 {
		in.Slots = make(map[string]request.Slot, len(values))
		for name, value := range values {
			in.Slots[name] = request.Slot{Name: name, Value: value}
		}
	}
	env.Request.Intent = in
	return env, nil
}

// ParseSlots разбирает строку слотов вида "AirportCode=ATL,Date=today".
// Пустая строка даёт пустой набор. Значение может быть пустым,
// имя слота — нет.
func ParseSlots(s string) (map[string]string, error) {
	out := make(map[string]string)
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, pair := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, apperrors.NewAppError(apperrors.ErrConfigValidate,
				fmt.Sprintf("неверный слот %q в VS_SIMULATE_SLOTS, ожидается Имя=значение", pair), nil)
		}
		out[name] = strings.TrimSpace(value)
	}
	return out, nil
}
