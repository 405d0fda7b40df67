package shared

import (
	"context"
	"os"
	"time"

	"github.com/Kargones/voiceskill/internal/config"
	"github.com/Kargones/voiceskill/internal/constants"
	"github.com/Kargones/voiceskill/internal/pkg/output"
	"github.com/Kargones/voiceskill/internal/pkg/tracing"
)

// Format возвращает формат вывода команды.
func Format(cfg *config.Config) string {
	if cfg != nil && cfg.OutputFormat != "" {
		return cfg.OutputFormat
	}
	if f := os.Getenv("VS_OUTPUT_FORMAT"); f != "" {
		return f
	}
	return output.FormatText
}

// IsJSON сообщает, запрошен ли машиночитаемый вывод.
func IsJSON(cfg *config.Config) bool {
	return output.IsJSON(Format(cfg))
}

// TraceID возвращает trace_id из контекста или генерирует новый.
func TraceID(ctx context.Context) string {
	if id := tracing.TraceIDFromContext(ctx); id != "" {
		return id
	}
	return tracing.GenerateTraceID()
}

// Metadata создаёт метаданные результата команды.
func Metadata(ctx context.Context, start time.Time) *output.Metadata {
	return output.NewMetadata(start, TraceID(ctx), constants.APIVersion)
}

// WriteResult выводит успешный результат команды в stdout.
func WriteResult(ctx context.Context, cfg *config.Config, command string, start time.Time,
	data any, summary *output.SummaryInfo) error {
	result := &output.Result{
		Status:   output.StatusSuccess,
		Command:  command,
		Data:     data,
		Metadata: Metadata(ctx, start),
		Summary:  summary,
	}
	return output.NewWriter(Format(cfg)).Write(os.Stdout, result)
}

// HandleError выводит результат со статусом "error" в stdout и возвращает err.
// Ошибка записи результата не подменяет исходную ошибку.
func HandleError(ctx context.Context, cfg *config.Config, command string, start time.Time, err error) error {
	result := output.NewErrorResult(command, err, Metadata(ctx, start))
	_ = output.NewWriter(Format(cfg)).Write(os.Stdout, result) //nolint:errcheck // исходная ошибка важнее
	return err
}
