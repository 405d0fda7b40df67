// Package requesthandler реализует команду handle-request: обработку
// одного запроса платформы навыком, описанным манифестом.
package requesthandler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Kargones/voiceskill/internal/command"
	"github.com/Kargones/voiceskill/internal/command/handlers/shared"
	"github.com/Kargones/voiceskill/internal/config"
	"github.com/Kargones/voiceskill/internal/constants"
	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
	"github.com/Kargones/voiceskill/internal/pkg/logging"
	"github.com/Kargones/voiceskill/internal/pkg/tracing"
	"github.com/Kargones/voiceskill/internal/request"
)

// maxRequestSize ограничивает размер читаемого запроса.
const maxRequestSize = 1 << 20

// stdinPath — значение VS_REQUEST_FILE, означающее чтение из stdin.
const stdinPath = "-"

// RegisterCmd регистрирует команду handle-request.
func RegisterCmd() {
	command.Register(&Handler{})
}

// Handler обрабатывает команду handle-request.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActHandleRequest
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Обработка JSON-запроса платформы (VS_REQUEST_FILE или stdin)"
}

// Execute читает запрос, передаёт его навыку и выводит конверт ответа.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	start := time.Now()

	app, err := shared.LoadSkill(ctx, cfg)
	if err != nil {
		return shared.HandleError(ctx, cfg, constants.ActHandleRequest, start, err)
	}

	data, err := readRequest(cfg.RequestFile)
	if err != nil {
		return shared.HandleError(ctx, cfg, constants.ActHandleRequest, start, err)
	}
	env, err := request.Parse(data)
	if err != nil {
		return shared.HandleError(ctx, cfg, constants.ActHandleRequest, start, err)
	}

	if id := env.Request.RequestID; id != "" && tracing.TraceIDFromContext(ctx) == "" {
		ctx = tracing.WithTraceID(ctx, tracing.TraceIDForRequest(id))
	}
	logging.FromContext(ctx).Info("запрос принят",
		slog.String("skill", app.Name()),
		slog.String("type", env.Type()),
		slog.String("intent", env.IntentName()),
		slog.String("request_id", env.Request.RequestID),
	)

	return shared.Dispatch(ctx, cfg, constants.ActHandleRequest, start, app, env)
}

// readRequest читает запрос из файла или из stdin, если путь пуст или равен "-".
func readRequest(path string) ([]byte, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != stdinPath {
		f, err := os.Open(path)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrRequestParse,
				fmt.Sprintf("не удалось открыть запрос %s", path), err)
		}
		defer f.Close() //nolint:errcheck // файл только читается
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxRequestSize+1))
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrRequestParse, "не удалось прочитать запрос", err)
	}
	if len(data) > maxRequestSize {
		return nil, apperrors.NewAppError(apperrors.ErrRequestParse,
			fmt.Sprintf("запрос больше %d байт", maxRequestSize), nil)
	}
	return data, nil
}
