package skill

import (
	"fmt"

	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
)

// Completion — результат обработчика: немедленный (Done, Fail) или
// отложенный (Async, Await). Нулевое значение равно Done().
type Completion struct {
	err     error
	pending <-chan error
}

// Done — обработчик завершился, ответ готов.
func Done() Completion {
	return Completion{}
}

// Fail — обработчик завершился ошибкой. Fail(nil) равно Done().
func Fail(err error) Completion {
	return Completion{err: err}
}

// Await — обработчик завершится, когда ch вернёт значение.
// Закрытый без значения канал означает успех. Обработчик обязан
// в итоге отправить значение или закрыть канал: диспетчер ждёт без таймаута.
func Await(ch <-chan error) Completion {
	if ch == nil {
		return Done()
	}
	return Completion{pending: ch}
}

// Async запускает fn в отдельной горутине и возвращает Completion,
// завершающийся вместе с fn. Паника в fn становится ошибкой.
func Async(fn func() error) Completion {
	ch := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- panicError(r)
			}
		}()
		ch <- fn()
	}()
	return Await(ch)
}

// wait блокируется до завершения обработчика.
func (c Completion) wait() error {
	if c.pending == nil {
		return c.err
	}
	err, ok := <-c.pending
	if !ok {
		return nil
	}
	return err
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return apperrors.NewAppError(apperrors.ErrHandlerFailed, "паника в обработчике", err)
	}
	return apperrors.NewAppError(apperrors.ErrHandlerFailed, fmt.Sprintf("паника в обработчике: %v", r), nil)
}
