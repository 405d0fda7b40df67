package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Kargones/voiceskill/internal/config"
	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
	"github.com/Kargones/voiceskill/internal/pkg/logging"
	"github.com/Kargones/voiceskill/internal/pkg/output"
	"github.com/Kargones/voiceskill/internal/request"
	"github.com/Kargones/voiceskill/internal/response"
	"github.com/Kargones/voiceskill/internal/skill"
)

// Dispatch передаёт запрос навыку и выводит конверт ответа.
// Ожидание ограничено cfg.Timeout; обработчик при этом не прерывается.
//
// В текстовом формате выводится только конверт ответа, пригодный для
// передачи платформе. В JSON формате конверт помещается в Result.Data.
func Dispatch(ctx context.Context, cfg *config.Config, command string, start time.Time,
	app *skill.App, env *request.Envelope) error {
	logger := logging.FromContext(ctx)

	waitCtx := ctx
	if cfg != nil && cfg.Timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	res, err := app.Dispatch(ctx, env).Wait(waitCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = apperrors.NewAppError(apperrors.ErrHandlerFailed,
				fmt.Sprintf("обработчик не завершился за %s", cfg.Timeout), err)
		}
		logger.Error("запрос не обработан",
			slog.String("skill", app.Name()),
			slog.String("intent", env.IntentName()),
			slog.String("error", err.Error()),
		)
		return HandleError(ctx, cfg, command, start, err)
	}

	if !IsJSON(cfg) {
		return writeEnvelope(res)
	}

	summary := output.NewSummaryInfo()
	summary.AddMetric("Навык", app.Name(), "")
	summary.AddMetric("Тип запроса", env.Type(), "")
	if name := env.IntentName(); name != "" {
		summary.AddMetric("Интент", name, "")
	}
	if res.Response.OutputSpeech == nil && res.Response.Card == nil {
		summary.AddWarning("ответ не содержит речи и карточки")
	}
	return WriteResult(ctx, cfg, command, start, res, summary)
}

func writeEnvelope(res *response.Envelope) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return apperrors.NewAppError(apperrors.ErrOutputFormat, "не удалось сериализовать ответ", err)
	}
	return nil
}
