// Package output предоставляет структуры и интерфейсы для форматирования
// результатов команд в JSON и текстовом формате.
package output

import (
	"time"

	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
)

// StatusSuccess и StatusError — возможные значения поля Status в Result.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result представляет структурированный результат выполнения команды.
// Сериализуется в JSON (VS_OUTPUT_FORMAT=json) или выводится
// человекочитаемым текстом (VS_OUTPUT_FORMAT=text).
type Result struct {
	// Status содержит статус выполнения: "success" или "error".
	Status string `json:"status"`

	// Command содержит имя выполненной команды.
	Command string `json:"command"`

	// Data содержит payload конкретной команды.
	Data any `json:"data,omitempty"`

	// Error заполняется только при status="error".
	Error *ErrorInfo `json:"error,omitempty"`

	// Metadata содержит метаданные выполнения.
	Metadata *Metadata `json:"metadata,omitempty"`

	// Summary не сериализуется напрямую: JSONWriter переносит его
	// в Metadata.Summary.
	Summary *SummaryInfo `json:"-"`
}

// ErrorInfo содержит информацию об ошибке в структурированном виде.
// Code — машиночитаемый код ошибки (например, "INTENT.NOT_FOUND").
// Message НЕ ДОЛЖЕН содержать токены привязанных аккаунтов.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata содержит метаданные выполнения команды.
type Metadata struct {
	// DurationMs — время выполнения команды в миллисекундах.
	DurationMs int64 `json:"duration_ms"`

	// TraceID — идентификатор трассировки для корреляции логов.
	TraceID string `json:"trace_id,omitempty"`

	// APIVersion — версия формата вывода.
	APIVersion string `json:"api_version"`

	// Summary заполняется из Result.Summary при сериализации в JSONWriter.
	Summary *SummaryInfo `json:"summary,omitempty"`
}

// NewMetadata создаёт Metadata с длительностью, отсчитанной от start.
func NewMetadata(start time.Time, traceID, apiVersion string) *Metadata {
	return &Metadata{
		DurationMs: time.Since(start).Milliseconds(),
		TraceID:    traceID,
		APIVersion: apiVersion,
	}
}

// NewErrorInfo преобразует ошибку в ErrorInfo. Код берётся из AppError;
// для прочих ошибок используется COMMAND.EXEC_FAILED.
func NewErrorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	code := apperrors.CodeOf(err)
	if code == "" {
		code = apperrors.ErrCommandExec
	}
	return &ErrorInfo{Code: code, Message: err.Error()}
}

// NewErrorResult создаёт Result со статусом "error".
func NewErrorResult(command string, err error, meta *Metadata) *Result {
	return &Result{
		Status:   StatusError,
		Command:  command,
		Error:    NewErrorInfo(err),
		Metadata: meta,
	}
}
