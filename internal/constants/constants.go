// Package constants содержит константы, используемые в проекте voiceskill.
// Константы сгруппированы по назначению.
package constants

// Сообщения приложения.
const (
	// MsgAppExit — сообщение о завершении работы программы.
	MsgAppExit = "Завершение работы программы"
	// MsgErrProcessing — ключ лога при обработке ошибки.
	MsgErrProcessing = "Обработка ошибки"
)

// Версия приложения. Переопределяется при сборке:
//
//	go build -ldflags "-X github.com/Kargones/voiceskill/internal/constants.Version=1.2.0"
var (
	// Version — версия приложения.
	Version = "dev"
	// PreCommitHash — хеш коммита, из которого собран бинарник.
	PreCommitHash = ""
)

// APIVersion — версия формата вывода команд.
const APIVersion = "v1"

// Имена команд.
const (
	// ActIntentSchema — вывод схемы интентов (диалект intent schema).
	ActIntentSchema = "intent-schema"
	// ActSchema — устаревший алиас ActIntentSchema.
	ActSchema = "schema"
	// ActSkillBuilderSchema — вывод схемы диалекта skill builder.
	ActSkillBuilderSchema = "skill-builder-schema"
	// ActUtterances — вывод образцов фраз.
	ActUtterances = "utterances"
	// ActHandleRequest — обработка запроса платформы.
	ActHandleRequest = "handle-request"
	// ActSimulate — обработка синтезированного IntentRequest.
	ActSimulate = "simulate"
	// ActVersion — вывод версии.
	ActVersion = "version"
	// ActHelp — вывод списка команд.
	ActHelp = "help"
)

// Файлы по умолчанию.
const (
	// DefaultConfigFile — файл конфигурации приложения.
	DefaultConfigFile = "voiceskill.yaml"
	// DefaultSkillFile — манифест навыка.
	DefaultSkillFile = "skill.yaml"
)

// Уровни логирования для bootstrap-логгера.
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelError   = "error"
	LogLevelDefault = LogLevelInfo
)

// Параметры simulate по умолчанию.
const (
	// DefaultLocale — локаль синтезированного запроса.
	DefaultLocale = "en-US"
	// SimulatedRequestIDPrefix — префикс идентификатора синтезированного запроса.
	SimulatedRequestIDPrefix = "voiceskill.request."
	// SimulatedSessionIDPrefix — префикс идентификатора синтезированной сессии.
	SimulatedSessionIDPrefix = "voiceskill.session."
	// SimulatedUserID — пользователь синтезированного запроса.
	SimulatedUserID = "voiceskill.user.local"
)
