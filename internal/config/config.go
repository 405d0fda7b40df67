// Package config содержит конфигурацию приложения.
package config

import (
	"log/slog"
	"time"
)

// AppConfig представляет настройки приложения из файла voiceskill.yaml.
type AppConfig struct {
	Skill   SkillConfig   `yaml:"skill"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// SkillConfig описывает навык, обслуживаемый командами.
type SkillConfig struct {
	// File — путь к YAML-манифесту навыка.
	File string `yaml:"file"`

	// Timeout — сколько ждать завершения обработчика интента.
	Timeout time.Duration `yaml:"timeout"`
}

// SimulateConfig содержит параметры синтезированного запроса команды simulate.
type SimulateConfig struct {
	// Type — тип запроса: IntentRequest, LaunchRequest или SessionEndedRequest.
	Type string `env:"VS_SIMULATE_TYPE" env-default:"IntentRequest" env-description:"тип синтезированного запроса"`

	// Intent — имя интента.
	Intent string `env:"VS_SIMULATE_INTENT" env-description:"интент синтезированного запроса"`

	// Slots — значения слотов в формате "Name=value,Other=value".
	Slots string `env:"VS_SIMULATE_SLOTS" env-description:"слоты в формате a=1,b=2"`

	// Locale — локаль запроса.
	Locale string `env:"VS_SIMULATE_LOCALE" env-default:"en-US" env-description:"локаль синтезированного запроса"`

	// AccessToken — токен привязанного аккаунта.
	AccessToken string `env:"VS_SIMULATE_ACCESS_TOKEN" env-description:"токен привязанного аккаунта"`
}

// Config содержит конфигурацию запуска команды.
type Config struct {
	// Command — имя команды. Первый аргумент командной строки имеет приоритет.
	Command string `env:"VS_COMMAND" env-default:"" env-description:"имя команды"`
	Logger  *slog.Logger

	// ConfigFile — путь к voiceskill.yaml. Если не задан, файл по умолчанию
	// читается только при наличии.
	ConfigFile string `env:"VS_CONFIG" env-default:"" env-description:"путь к файлу конфигурации"`

	// SkillFile — путь к манифесту навыка. Переопределяет skill.file из AppConfig.
	SkillFile string `env:"VS_SKILL_FILE" env-default:"" env-description:"путь к манифесту навыка"`

	// RequestFile — файл с JSON запроса для handle-request. Пусто — stdin.
	RequestFile string `env:"VS_REQUEST_FILE" env-default:"" env-description:"файл запроса (пусто — stdin)"`

	// OutputFormat — "text" или "json".
	OutputFormat string `env:"VS_OUTPUT_FORMAT" env-default:"text" env-description:"формат вывода: text или json"`

	// Timeout — ожидание результата обработчика. Переопределяет skill.timeout.
	Timeout time.Duration `env:"VS_TIMEOUT" env-description:"таймаут ожидания обработчика"`

	// ValidateSchema включает проверку выводимых схем по JSON Schema диалекта.
	ValidateSchema bool `env:"VS_VALIDATE_SCHEMA" env-default:"true" env-description:"проверять выводимые схемы"`

	Simulate SimulateConfig

	// AppConfig — содержимое voiceskill.yaml или nil, если файла нет.
	AppConfig *AppConfig

	// LoggingConfig содержит настройки логирования.
	LoggingConfig *LoggingConfig

	// MetricsConfig содержит настройки Prometheus метрик.
	MetricsConfig *MetricsConfig

	// TracingConfig содержит настройки OpenTelemetry трейсинга.
	TracingConfig *TracingConfig
}
