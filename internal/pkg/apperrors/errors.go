// Package apperrors предоставляет структурированные ошибки voiceskill.
// Переименован из errors чтобы избежать конфликта со стандартной библиотекой.
package apperrors

import (
	"errors"
	"fmt"
)

// Коды ошибок в иерархическом формате: CATEGORY.SPECIFIC_ERROR.
// Позволяет grep по категориям: `grep "INTENT\."` для всех ошибок интентов.
const (
	// Category: CONFIG — ошибки загрузки и парсинга конфигурации приложения.
	ErrConfigLoad     = "CONFIG.LOAD_FAILED"
	ErrConfigParse    = "CONFIG.PARSE_FAILED"
	ErrConfigValidate = "CONFIG.VALIDATION_FAILED"

	// Category: COMMAND — ошибки CLI-команд.
	ErrCommandNotFound = "COMMAND.NOT_FOUND"
	ErrCommandExec     = "COMMAND.EXEC_FAILED"

	// Category: OUTPUT — ошибки форматирования вывода.
	ErrOutputFormat = "OUTPUT.FORMAT_FAILED"

	// Category: INTENT — ошибки объявления и поиска интентов.
	ErrIntentNotFound      = "INTENT.NOT_FOUND"
	ErrIntentInvalidConfig = "INTENT.INVALID_CONFIG"

	// Category: HANDLER — ошибки, возникшие внутри обработчика интента.
	ErrHandlerFailed = "HANDLER.FAILED"

	// Category: REQUEST — ошибки входящего запроса платформы.
	ErrRequestParse       = "REQUEST.PARSE_FAILED"
	ErrRequestUnsupported = "REQUEST.UNSUPPORTED"

	// Category: SCHEMA — ошибки сборки и валидации схем интентов.
	ErrSchemaInvalid = "SCHEMA.INVALID"

	// Category: MANIFEST — ошибки загрузки манифеста навыка.
	ErrManifestLoad = "MANIFEST.LOAD_FAILED"
)

// AppError представляет структурированную ошибку приложения.
// Реализует error interface и поддерживает wrapping через Unwrap().
//
// ВАЖНО: Message НЕ ДОЛЖЕН содержать токены пользователя (accessToken из запроса).
//
// Пример использования:
//
//	return apperrors.NewAppError(apperrors.ErrIntentNotFound,
//	    fmt.Sprintf("интент %q не зарегистрирован", name),
//	    nil)
type AppError struct {
	// Code — машиночитаемый код ошибки в формате CATEGORY.SPECIFIC.
	Code string `json:"code"`

	// Message — человекочитаемое описание ошибки.
	Message string `json:"message"`

	// Cause — wrapped оригинальная ошибка.
	// Не сериализуется в JSON.
	Cause error `json:"-"`
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap возвращает wrapped ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError создаёт новый AppError с заданным кодом, сообщением и причиной.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf возвращает код первой AppError в цепочке err.
// Пустая строка если AppError в цепочке нет.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Is проверяет, что в цепочке err есть AppError с указанным кодом.
func Is(err error, code string) bool {
	for err != nil {
		var appErr *AppError
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}
