// Package logging предоставляет интерфейс и реализации для структурированного логирования.
package logging

import "context"

// Logger определяет интерфейс для структурированного логирования.
//
// Все методы принимают сообщение и опциональные key-value пары:
//
//	logger.Info("запрос обработан", "intent", name, "duration_ms", 12)
//
// Logger пишет только в stderr или файл. stdout занят ответами навыка.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With возвращает новый Logger с добавленными атрибутами.
	//
	//	logger.With("request_id", id).Info("запрос принят")
	With(args ...any) Logger
}

type ctxKey struct{}

// NewContext возвращает контекст, несущий logger.
// Диспетчер кладёт в контекст логгер с атрибутами запроса, обработчики
// интентов достают его через FromContext.
func NewContext(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext возвращает logger из контекста или NopLogger.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(Logger); ok && l != nil {
			return l
		}
	}
	return NewNopLogger()
}
