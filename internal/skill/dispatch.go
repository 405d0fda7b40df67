package skill

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
	"github.com/Kargones/voiceskill/internal/pkg/logging"
	"github.com/Kargones/voiceskill/internal/pkg/tracing"
	"github.com/Kargones/voiceskill/internal/request"
	"github.com/Kargones/voiceskill/internal/response"
)

// Pending — асинхронный результат диспетчеризации.
// Результат публикуется ровно один раз; Wait можно вызывать многократно.
type Pending struct {
	done chan struct{}
	env  *response.Envelope
	err  error
}

// Wait ждёт результат диспетчеризации или отмены ctx.
// Отмена ctx прекращает только ожидание: обработчик продолжает работу.
func (p *Pending) Wait(ctx context.Context) (*response.Envelope, error) {
	select {
	case <-p.done:
		return p.env, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done закрывается после публикации результата.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

func (p *Pending) resolve(env *response.Envelope, err error) {
	p.env, p.err = env, err
	close(p.done)
}

// Dispatch направляет запрос обработчику и возвращает отложенный результат.
// Dispatch не завершается ошибкой синхронно: неизвестный интент, ошибка
// или паника обработчика доставляются через Pending.Wait.
func (a *App) Dispatch(ctx context.Context, env *request.Envelope) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		p.resolve(a.dispatch(ctx, env))
	}()
	return p
}

// HandleRequest обрабатывает запрос и ждёт ответ.
func (a *App) HandleRequest(ctx context.Context, env *request.Envelope) (*response.Envelope, error) {
	return a.Dispatch(ctx, env).Wait(ctx)
}

// HandleJSON разбирает JSON запроса платформы и обрабатывает его.
func (a *App) HandleJSON(ctx context.Context, data []byte) (*response.Envelope, error) {
	env, err := request.Parse(data)
	if err != nil {
		return nil, err
	}
	return a.HandleRequest(ctx, env)
}

func (a *App) dispatch(ctx context.Context, env *request.Envelope) (*response.Envelope, error) {
	if env == nil {
		return nil, apperrors.NewAppError(apperrors.ErrRequestParse, "пустой конверт запроса", nil)
	}

	start := time.Now()
	typ, name := env.Type(), env.IntentName()

	ctx, traceID := traceContext(ctx, env.Request.RequestID)
	ctx, span := a.tracer.Start(ctx, "skill.dispatch",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("skill.name", a.name),
			attribute.String("request.type", typ),
			attribute.String("request.id", env.Request.RequestID),
			attribute.String("intent.name", name),
		),
	)
	defer span.End()

	log := a.logger.With(
		"skill", a.name,
		"request_type", typ,
		"intent", name,
		"trace_id", traceID,
	)
	ctx = logging.NewContext(ctx, log)

	a.metrics.RecordDispatchStart(a.name, name)
	log.Debug("запрос принят", "request_id", env.Request.RequestID)

	out, err := a.serve(ctx, env)
	duration := time.Since(start)
	a.metrics.RecordDispatchEnd(a.name, name, duration, err == nil)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperrors.CodeOf(err))
		log.Warn("запрос отклонён",
			"error_code", apperrors.CodeOf(err),
			"error", err.Error(),
			"duration_ms", duration.Milliseconds(),
		)
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	log.Info("запрос обработан", "duration_ms", duration.Milliseconds())
	return out, nil
}

// traceContext сохраняет трейс вызывающего: его span context и trace ID.
// Из requestId trace ID выводится, только если ctx не несёт ни того, ни другого.
func traceContext(ctx context.Context, requestID string) (context.Context, string) {
	traceID := tracing.TraceIDFromContext(ctx)
	sc := trace.SpanContextFromContext(ctx)
	switch {
	case sc.IsValid():
		if traceID == "" {
			traceID = sc.TraceID().String()
			ctx = tracing.WithTraceID(ctx, traceID)
		}
	case traceID != "":
		ctx = tracing.ContextWithOTelTraceID(ctx, traceID)
	default:
		traceID = tracing.TraceIDForRequest(requestID)
		ctx = tracing.WithTraceID(ctx, traceID)
		ctx = tracing.ContextWithOTelTraceID(ctx, traceID)
	}
	return ctx, traceID
}

// serve выполняет обработчик на новом Builder и сериализует ответ.
func (a *App) serve(ctx context.Context, env *request.Envelope) (*response.Envelope, error) {
	handler, err := a.route(env)
	if err != nil {
		return nil, err
	}

	res := response.NewBuilder()
	if err := invoke(ctx, handler, request.New(env), res).wait(); err != nil {
		if apperrors.Is(err, apperrors.ErrHandlerFailed) {
			return nil, err
		}
		return nil, apperrors.NewAppError(apperrors.ErrHandlerFailed, "обработчик завершился с ошибкой", err)
	}
	return res.Build(), nil
}

// invoke вызывает обработчик, превращая панику в Fail.
func invoke(ctx context.Context, h HandlerFunc, req *request.Request, res *response.Builder) (c Completion) {
	defer func() {
		if r := recover(); r != nil {
			c = Fail(panicError(r))
		}
	}()
	return h(ctx, req, res)
}
