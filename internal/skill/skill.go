// Package skill связывает реестр интентов с обработчиками и диспетчеризует
// входящие запросы платформы.
//
// Навык объявляется один раз при старте:
//
//	app := skill.New("airport", skill.WithLogger(logger))
//	app.MustIntent("airportInfoIntent", intent.Options{
//		Slots:      []intent.Slot{{Name: "AirportCode", Type: "FAACODES"}},
//		Utterances: []string{"airport info for {AirportCode}"},
//	}, func(ctx context.Context, req *request.Request, res *response.Builder) skill.Completion {
//		res.Say("Info for " + req.Slot("AirportCode"))
//		return skill.Done()
//	})
//
// Схемы для платформы строятся из того же реестра (Schema, Utterances),
// запросы обрабатываются через Dispatch или HandleRequest.
package skill

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/voiceskill/internal/intent"
	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
	"github.com/Kargones/voiceskill/internal/pkg/logging"
	"github.com/Kargones/voiceskill/internal/pkg/metrics"
	"github.com/Kargones/voiceskill/internal/pkg/tracing"
	"github.com/Kargones/voiceskill/internal/request"
	"github.com/Kargones/voiceskill/internal/response"
	"github.com/Kargones/voiceskill/internal/schema"
)

// HandlerFunc обрабатывает запрос и наполняет ответ.
// Builder принадлежит одному вызову и сериализуется после завершения Completion.
type HandlerFunc func(ctx context.Context, req *request.Request, res *response.Builder) Completion

// App — навык: реестр интентов, их обработчики и обработчики служебных запросов.
type App struct {
	name     string
	registry *intent.Registry

	mu           sync.RWMutex
	handlers     map[string]HandlerFunc
	launch       HandlerFunc
	sessionEnded HandlerFunc

	logger  logging.Logger
	metrics metrics.Collector
	tracer  trace.Tracer
}

// Option настраивает App.
type Option func(*App)

// WithLogger задаёт логгер диспетчера.
func WithLogger(l logging.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics задаёт сборщик метрик диспетчеризации.
func WithMetrics(c metrics.Collector) Option {
	return func(a *App) {
		if c != nil {
			a.metrics = c
		}
	}
}

// WithTracer задаёт tracer для спанов диспетчеризации.
// По умолчанию используется tracer глобального TracerProvider.
func WithTracer(t trace.Tracer) Option {
	return func(a *App) {
		if t != nil {
			a.tracer = t
		}
	}
}

// New создаёт навык без интентов.
func New(name string, opts ...Option) *App {
	a := &App{
		name:     name,
		registry: intent.NewRegistry(),
		handlers: make(map[string]HandlerFunc),
		logger:   logging.NewNopLogger(),
		metrics:  metrics.NewNopCollector(),
		tracer:   tracing.Tracer(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name возвращает имя навыка.
func (a *App) Name() string { return a.name }

// Registry возвращает реестр интентов навыка.
func (a *App) Registry() *intent.Registry { return a.registry }

// Intent объявляет интент и его обработчик. Повторное объявление
// заменяет интент и обработчик, сохраняя позицию в реестре.
//
// handler может быть nil: интент попадает в схему, а запросы к нему
// отклоняются с INTENT.NOT_FOUND.
func (a *App) Intent(name string, opts intent.Options, handler HandlerFunc) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.registry.Register(name, opts); err != nil {
		return err
	}
	if handler == nil {
		delete(a.handlers, name)
		return nil
	}
	a.handlers[name] = handler
	return nil
}

// MustIntent — Intent, паникующий при ошибке конфигурации.
// Для объявления навыка в init() и тестах.
func (a *App) MustIntent(name string, opts intent.Options, handler HandlerFunc) *App {
	if err := a.Intent(name, opts, handler); err != nil {
		panic(err)
	}
	return a
}

// Launch задаёт обработчик LaunchRequest.
func (a *App) Launch(handler HandlerFunc) *App {
	a.mu.Lock()
	a.launch = handler
	a.mu.Unlock()
	return a
}

// SessionEnded задаёт обработчик SessionEndedRequest.
func (a *App) SessionEnded(handler HandlerFunc) *App {
	a.mu.Lock()
	a.sessionEnded = handler
	a.mu.Unlock()
	return a
}

// Schema собирает схему интентов навыка в указанном диалекте.
func (a *App) Schema(d schema.Dialect) ([]byte, error) {
	return schema.Compile(d, a.registry)
}

// Utterances возвращает примеры фраз навыка в текстовом формате.
func (a *App) Utterances() string {
	return schema.Utterances(a.registry)
}

// route выбирает обработчик по типу запроса.
func (a *App) route(env *request.Envelope) (HandlerFunc, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	switch typ := env.Type(); typ {
	case request.TypeIntent:
		name := env.IntentName()
		if name == "" {
			return nil, apperrors.NewAppError(apperrors.ErrIntentNotFound, "в запросе нет имени интента", nil)
		}
		h, ok := a.handlers[name]
		if !ok {
			return nil, apperrors.NewAppError(apperrors.ErrIntentNotFound,
				"интент "+name+" не найден в навыке "+a.name, nil)
		}
		return h, nil
	case request.TypeLaunch:
		if a.launch == nil {
			return nil, apperrors.NewAppError(apperrors.ErrRequestUnsupported,
				"навык "+a.name+" не обрабатывает LaunchRequest", nil)
		}
		return a.launch, nil
	case request.TypeSessionEnded:
		if a.sessionEnded == nil {
			return emptyReply, nil
		}
		return a.sessionEnded, nil
	case "":
		return nil, apperrors.NewAppError(apperrors.ErrRequestUnsupported, "в запросе нет типа и интента", nil)
	default:
		return nil, apperrors.NewAppError(apperrors.ErrRequestUnsupported,
			"неподдерживаемый тип запроса "+typ, nil)
	}
}

// emptyReply отвечает на SessionEndedRequest без обработчика.
func emptyReply(context.Context, *request.Request, *response.Builder) Completion {
	return Done()
}
