package config

import (
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/voiceskill/internal/pkg/logging"
)

// LoggingConfig содержит настройки для логирования.
type LoggingConfig struct {
	// Level - уровень логирования (debug, info, warn, error)
	Level string `yaml:"level" env:"VS_LOG_LEVEL" env-default:"info"`

	// Format - формат логов (json, text)
	Format string `yaml:"format" env:"VS_LOG_FORMAT" env-default:"text"`

	// Output - вывод логов (stderr, file)
	Output string `yaml:"output" env:"VS_LOG_OUTPUT" env-default:"stderr"`

	// FilePath - путь к файлу логов (если output=file)
	FilePath string `yaml:"filePath" env:"VS_LOG_FILE_PATH"`

	// MaxSize - максимальный размер файла лога в MB
	MaxSize int `yaml:"maxSize" env:"VS_LOG_MAX_SIZE" env-default:"50"`

	// MaxBackups - максимальное количество backup файлов
	MaxBackups int `yaml:"maxBackups" env:"VS_LOG_MAX_BACKUPS" env-default:"5"`

	// MaxAge - максимальный возраст backup файлов в днях
	MaxAge int `yaml:"maxAge" env:"VS_LOG_MAX_AGE" env-default:"14"`

	// Compress - сжимать ли backup файлы.
	// compress: false из YAML перекрывается env-default при cleanenv.ReadEnv.
	Compress bool `yaml:"compress" env:"VS_LOG_COMPRESS" env-default:"true"`

	// AddSource - добавлять файл и строку вызова в записи.
	AddSource bool `yaml:"addSource" env:"VS_LOG_ADD_SOURCE" env-default:"false"`
}

// ToLogging преобразует настройки в logging.Config.
func (lc *LoggingConfig) ToLogging() logging.Config {
	return logging.Config{
		Level:      lc.Level,
		Format:     lc.Format,
		Output:     lc.Output,
		FilePath:   lc.FilePath,
		MaxSize:    lc.MaxSize,
		MaxBackups: lc.MaxBackups,
		MaxAge:     lc.MaxAge,
		Compress:   lc.Compress,
		AddSource:  lc.AddSource,
	}
}

// loadLoggingConfig загружает конфигурацию логирования из AppConfig или значений по умолчанию.
// Переменные окружения VS_LOG_* переопределяют значения из AppConfig.
func loadLoggingConfig(l *slog.Logger, cfg *Config) *LoggingConfig {
	if cfg.AppConfig != nil && (cfg.AppConfig.Logging != LoggingConfig{}) {
		loggingConfig := &cfg.AppConfig.Logging
		if err := cleanenv.ReadEnv(loggingConfig); err != nil {
			l.Warn("Ошибка загрузки Logging конфигурации из переменных окружения",
				slog.String("error", err.Error()),
			)
		}
		l.Debug("Logging конфигурация загружена из AppConfig",
			slog.String("level", loggingConfig.Level),
			slog.String("format", loggingConfig.Format),
		)
		return loggingConfig
	}

	loggingConfig := getDefaultLoggingConfig()
	if err := cleanenv.ReadEnv(loggingConfig); err != nil {
		l.Warn("Ошибка загрузки Logging конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}
	l.Debug("Logging конфигурация: используются значения по умолчанию",
		slog.String("level", loggingConfig.Level),
		slog.String("format", loggingConfig.Format),
	)
	return loggingConfig
}

// getDefaultLoggingConfig возвращает конфигурацию логирования по умолчанию.
// Значения совпадают с logging.DefaultConfig.
func getDefaultLoggingConfig() *LoggingConfig {
	d := logging.DefaultConfig()
	return &LoggingConfig{
		Level:      d.Level,
		Format:     d.Format,
		Output:     d.Output,
		FilePath:   d.FilePath,
		MaxSize:    d.MaxSize,
		MaxBackups: d.MaxBackups,
		MaxAge:     d.MaxAge,
		Compress:   d.Compress,
	}
}
