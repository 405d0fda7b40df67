package intent

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
)

// Registry хранит интенты навыка в порядке объявления.
//
// Повторная регистрация имени заменяет определение интента, сохраняя
// его исходную позицию. Порядок первой регистрации — порядок во всех схемах.
//
// Реестр рассчитан на полную настройку до начала обработки запросов,
// но чтение и запись защищены mu.
type Registry struct {
	mu      sync.RWMutex
	intents []Intent
	// index — позиция интента в intents по имени.
	index map[string]int
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register добавляет интент или заменяет ранее объявленный с тем же именем.
//
// Конфигурация проверяется сразу (fail fast). Ошибки имеют код
// apperrors.ErrIntentInvalidConfig:
//   - пустое имя интента
//   - пустое имя или тип слота
//   - повторяющееся имя слота
//   - пустая фраза в Utterances
func (r *Registry) Register(name string, opts Options) error {
	in, err := build(name, opts)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if pos, exists := r.index[name]; exists {
		r.intents[pos] = in
		return nil
	}
	r.index[name] = len(r.intents)
	r.intents = append(r.intents, in)
	return nil
}

// Get возвращает копию интента по имени.
func (r *Registry) Get(name string) (Intent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, ok := r.index[name]
	if !ok {
		return Intent{}, false
	}
	return r.intents[pos].clone(), true
}

// Intents возвращает копию всех интентов в порядке объявления.
// Изменения результата не влияют на реестр.
func (r *Registry) Intents() []Intent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Intent, len(r.intents))
	for i, in := range r.intents {
		out[i] = in.clone()
	}
	return out
}

// Names возвращает имена интентов в порядке объявления.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.intents))
	for i, in := range r.intents {
		names[i] = in.Name
	}
	return names
}

// Len возвращает количество объявленных интентов.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.intents)
}

// build проверяет Options и собирает Intent с нормализованными фразами.
func build(name string, opts Options) (Intent, error) {
	if strings.TrimSpace(name) == "" {
		return Intent{}, invalid("имя интента не может быть пустым")
	}

	in := Intent{Name: name, Utterances: make([]string, 0, len(opts.Utterances))}

	if len(opts.Slots) > 0 {
		seen := make(map[string]struct{}, len(opts.Slots))
		in.Slots = make([]Slot, 0, len(opts.Slots))
		for i, s := range opts.Slots {
			if s.Name == "" {
				return Intent{}, invalid(fmt.Sprintf("интент %q: слот #%d без имени", name, i+1))
			}
			if s.Type == "" {
				return Intent{}, invalid(fmt.Sprintf("интент %q: слот %q без типа", name, s.Name))
			}
			if _, dup := seen[s.Name]; dup {
				return Intent{}, invalid(fmt.Sprintf("интент %q: слот %q объявлен повторно", name, s.Name))
			}
			seen[s.Name] = struct{}{}
			in.Slots = append(in.Slots, s)
		}
	}

	for i, u := range opts.Utterances {
		// Фразы хранятся в NFC.
		u = norm.NFC.String(strings.TrimSpace(u))
		if u == "" {
			return Intent{}, invalid(fmt.Sprintf("интент %q: пустая фраза #%d", name, i+1))
		}
		in.Utterances = append(in.Utterances, u)
	}

	return in, nil
}

func invalid(msg string) error {
	return apperrors.NewAppError(apperrors.ErrIntentInvalidConfig, msg, nil)
}
