package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger создаёт Logger по конфигурации.
//
// config.Output:
//   - "stderr" или "": логи пишутся в os.Stderr
//   - "file": логи пишутся в файл с ротацией через lumberjack
//
// Неизвестный вывод и невозможность создать директорию логов приводят
// к записи в stderr с предупреждением.
func NewLogger(config Config) Logger {
	var w io.Writer

	switch config.Output {
	case OutputFile:
		w = newLumberjackWriter(config)
	case OutputStderr, "":
		w = os.Stderr
	default:
		warnBootstrap("WARNING: неизвестный logging output %q, используется stderr\n", config.Output)
		w = os.Stderr
	}

	return NewLoggerWithWriter(config, w)
}

func warnBootstrap(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...) //nolint:errcheck // bootstrap stderr
}

// newLumberjackWriter создаёт writer с ротацией.
// Директория файла логов создаётся при необходимости.
func newLumberjackWriter(config Config) io.Writer {
	if config.FilePath == "" {
		warnBootstrap("WARNING: logging output=file без пути к файлу, используется stderr\n")
		return os.Stderr
	}

	dir := filepath.Dir(config.FilePath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			warnBootstrap("WARNING: не удалось создать директорию логов %q: %v, используется stderr\n", dir, err)
			return os.Stderr
		}
	}

	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}
}

// NewLoggerWithWriter создаёт Logger, пишущий в w.
func NewLoggerWithWriter(config Config, w io.Writer) Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(config.Level),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return NewSlogAdapter(slog.New(handler))
}

// ParseLevel конвертирует строковый уровень в slog.Level.
// Неизвестное значение даёт slog.LevelInfo.
func ParseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
