package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/Kargones/voiceskill/internal/constants"
	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
	"github.com/Kargones/voiceskill/internal/pkg/output"
)

// DefaultTimeout — ожидание обработчика, если не задано ни VS_TIMEOUT, ни skill.timeout.
const DefaultTimeout = 30 * time.Second

// MustLoad загружает конфигурацию из аргументов командной строки,
// переменных окружения и файла voiceskill.yaml.
func MustLoad() (*Config, error) {
	return Load(os.Args[1:])
}

// Load загружает конфигурацию. Имя команды берётся из первого аргумента,
// иначе из VS_COMMAND.
func Load(args []string) (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigParse,
			"не удалось прочитать переменные окружения в Config", err)
	}

	cfg.Command = resolveCommand(args, cfg.Command)
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = output.FormatText
	}

	l := getSlog(os.Getenv("VS_LOG_LEVEL"))
	cfg.Logger = l

	appConfig, err := loadAppConfig(l, cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	cfg.AppConfig = appConfig
	applySkillConfig(&cfg)

	cfg.LoggingConfig = loadLoggingConfig(l, &cfg)

	cfg.MetricsConfig = loadMetricsConfig(l, &cfg)
	if cfg.MetricsConfig.Enabled {
		if valErr := validateMetricsConfig(cfg.MetricsConfig); valErr != nil {
			l.Warn("невалидная конфигурация метрик, метрики отключены",
				slog.String("error", valErr.Error()),
				slog.String("reason", "validation_failed"),
			)
			cfg.MetricsConfig = getDefaultMetricsConfig()
		}
	}

	cfg.TracingConfig = loadTracingConfig(l, &cfg)
	if cfg.TracingConfig.Enabled {
		if valErr := validateTracingConfig(cfg.TracingConfig); valErr != nil {
			l.Warn("невалидная конфигурация трейсинга, трейсинг отключён",
				slog.String("error", valErr.Error()),
				slog.String("reason", "validation_failed"),
			)
			cfg.TracingConfig = getDefaultTracingConfig()
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет значения, без которых команды не могут работать.
func (cfg *Config) Validate() error {
	var problems []string

	switch strings.ToLower(cfg.OutputFormat) {
	case output.FormatText, output.FormatJSON:
	default:
		problems = append(problems, fmt.Sprintf("VS_OUTPUT_FORMAT: неизвестный формат %q", cfg.OutputFormat))
	}
	if cfg.Timeout <= 0 {
		problems = append(problems, "VS_TIMEOUT: таймаут должен быть положительным")
	}
	if cfg.LoggingConfig != nil {
		if err := cfg.LoggingConfig.ToLogging().Validate(); err != nil {
			problems = append(problems, "logging: "+err.Error())
		}
	}

	if len(problems) > 0 {
		return apperrors.NewAppError(apperrors.ErrConfigValidate,
			"невалидная конфигурация: "+strings.Join(problems, "; "), nil)
	}
	return nil
}

// resolveCommand возвращает имя команды: первый аргумент, не являющийся флагом,
// имеет приоритет над VS_COMMAND.
func resolveCommand(args []string, fromEnv string) string {
	if len(args) > 0 && args[0] != "" && !strings.HasPrefix(args[0], "-") {
		return args[0]
	}
	return strings.TrimSpace(fromEnv)
}

// loadAppConfig читает voiceskill.yaml. Отсутствие файла по умолчанию не
// является ошибкой; явно указанный через VS_CONFIG файл обязан существовать.
func loadAppConfig(l *slog.Logger, configFile string) (*AppConfig, error) {
	explicit := configFile != ""
	if !explicit {
		configFile = constants.DefaultConfigFile
	}

	data, err := os.ReadFile(configFile) //nolint:gosec // путь задаётся оператором
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			l.Debug("Файл конфигурации не найден, используются значения по умолчанию",
				slog.String("file", configFile),
			)
			return nil, nil
		}
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			fmt.Sprintf("ошибка чтения %s", configFile), err)
	}

	var appConfig AppConfig
	if err = yaml.Unmarshal(data, &appConfig); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigParse,
			fmt.Sprintf("ошибка парсинга %s", configFile), err)
	}

	l.Debug("Конфигурация приложения загружена", slog.String("file", configFile))
	return &appConfig, nil
}

// applySkillConfig заполняет SkillFile и Timeout: переменные окружения,
// затем секция skill из AppConfig, затем значения по умолчанию.
func applySkillConfig(cfg *Config) {
	if cfg.AppConfig != nil {
		if cfg.SkillFile == "" {
			cfg.SkillFile = cfg.AppConfig.Skill.File
		}
		if cfg.Timeout == 0 {
			cfg.Timeout = cfg.AppConfig.Skill.Timeout
		}
	}
	if cfg.SkillFile == "" {
		cfg.SkillFile = constants.DefaultSkillFile
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
}

// getSlog создаёт bootstrap-логгер, работающий до инициализации logging.Logger.
// Пишет в stderr: stdout занят выводом команд.
func getSlog(logLevel string) *slog.Logger {
	programLevel := new(slog.LevelVar)

	switch strings.ToLower(logLevel) {
	case constants.LogLevelDebug:
		programLevel.Set(slog.LevelDebug)
	case constants.LogLevelWarn:
		programLevel.Set(slog.LevelWarn)
	case constants.LogLevelError:
		programLevel.Set(slog.LevelError)
	default:
		programLevel.Set(slog.LevelInfo)
	}

	l := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: true,
		Level:     programLevel,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if s, ok := a.Value.Any().(*slog.Source); ok {
					s.File = path.Base(s.File)
				}
			}
			return a
		},
	}))
	return l.With(slog.Group("app",
		slog.String("version", constants.Version),
	))
}

// Usage возвращает описание переменных окружения Config для команды help.
func Usage() (string, error) {
	header := "Переменные окружения:"
	return cleanenv.GetDescription(&Config{}, &header)
}
