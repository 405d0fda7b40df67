// Package main содержит точку входа voiceskill: CLI для сборки схем
// навыка и обработки запросов голосовой платформы.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/voiceskill/internal/command"
	"github.com/Kargones/voiceskill/internal/command/handlers"
	"github.com/Kargones/voiceskill/internal/config"
	"github.com/Kargones/voiceskill/internal/constants"
	"github.com/Kargones/voiceskill/internal/di"
	"github.com/Kargones/voiceskill/internal/pkg/logging"
	"github.com/Kargones/voiceskill/internal/pkg/metrics"
	"github.com/Kargones/voiceskill/internal/pkg/tracing"
)

// Коды завершения процесса.
const (
	exitOK             = 0
	exitUnknownCommand = 2
	exitConfigError    = 5
	exitCommandError   = 8
)

// shutdownTimeout ограничивает отправку метрик и span-ов при завершении.
const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run(os.Args[1:]))
}

// run выполняет команду и возвращает exit code.
// os.Exit вызывается в main уже после отработки defer-ов run:
// иначе span-ы и метрики неудачных запусков терялись бы.
func run(args []string) int {
	cfg, err := config.Load(args)
	if err != nil || cfg == nil {
		fmt.Fprintf(os.Stderr, "Не удалось загрузить конфигурацию приложения: %v\n", err)
		return exitConfigError
	}
	cfg.Logger.Debug("Информация о сборке",
		slog.String("version", constants.Version),
		slog.String("commit_hash", constants.PreCommitHash),
	)

	if cfg.Command == "" {
		cfg.Command = constants.ActHelp
	}

	handlers.RegisterAll()
	handler, err := command.Resolve(cfg.Command)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\nСписок команд: voiceskill %s\n", err, constants.ActHelp)
		return exitUnknownCommand
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось инициализировать приложение: %v\n", err)
		return exitConfigError
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		app.Shutdown(shutdownCtx)
	}()

	logger := app.Logger.With(
		slog.String("trace_id", app.TraceID),
		slog.String("command", cfg.Command),
	)

	ctx := tracing.WithTraceID(context.Background(), app.TraceID)
	ctx = tracing.ContextWithOTelTraceID(ctx, app.TraceID)
	ctx = logging.NewContext(ctx, logger)
	ctx = metrics.NewContext(ctx, app.MetricsCollector)

	ctx, span := tracing.Tracer().Start(ctx, cfg.Command,
		trace.WithAttributes(
			attribute.String("command", cfg.Command),
			attribute.String("skill_file", cfg.SkillFile),
			attribute.String("trace_id", app.TraceID),
		),
	)
	defer span.End()

	return execute(ctx, cfg, handler, logger, span)
}

// execute запускает команду и переводит её результат в exit code.
func execute(ctx context.Context, cfg *config.Config, handler command.Handler,
	logger logging.Logger, span trace.Span) int {
	start := time.Now()
	logger.Debug("Выполнение команды")

	if err := handler.Execute(ctx, cfg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("Ошибка выполнения команды",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)),
			slog.String(constants.MsgErrProcessing, constants.MsgAppExit),
		)
		return exitCommandError
	}

	logger.Debug("Команда выполнена", slog.Duration("duration", time.Since(start)))
	return exitOK
}
