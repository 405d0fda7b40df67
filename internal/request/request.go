// Package request описывает входящий запрос голосовой платформы
// и предоставляет обработчикам интентов read-only представление запроса.
package request

import (
	"bytes"
	"encoding/json"

	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
)

// Типы запросов платформы.
const (
	TypeLaunch       = "LaunchRequest"
	TypeIntent       = "IntentRequest"
	TypeSessionEnded = "SessionEndedRequest"
)

// Envelope — конверт входящего запроса платформы.
// Минимально необходимая форма: {"request":{"intent":{"name":"..."}}}.
type Envelope struct {
	Version string   `json:"version,omitempty"`
	Session *Session `json:"session,omitempty"`
	Request Body     `json:"request"`
}

// Session содержит данные сессии. Между запросами не сохраняется.
type Session struct {
	New         bool         `json:"new"`
	SessionID   string       `json:"sessionId,omitempty"`
	Application *Application `json:"application,omitempty"`
	User        *User        `json:"user,omitempty"`
}

// Application идентифицирует навык на стороне платформы.
type Application struct {
	ApplicationID string `json:"applicationId"`
}

// User идентифицирует пользователя платформы.
// AccessToken присутствует после привязки аккаунта (LinkAccount).
type User struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken,omitempty"`
}

// Body — тело запроса.
type Body struct {
	Type      string  `json:"type,omitempty"`
	RequestID string  `json:"requestId,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
	Locale    string  `json:"locale,omitempty"`
	Intent    *Intent `json:"intent,omitempty"`
	// Reason заполняется платформой для SessionEndedRequest.
	Reason string `json:"reason,omitempty"`
}

// Intent — распознанный платформой интент со значениями слотов.
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

// Slot — значение слота во входящем запросе.
type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// Parse разбирает JSON запроса платформы.
// Ошибки имеют код apperrors.ErrRequestParse.
func Parse(data []byte) (*Envelope, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, apperrors.NewAppError(apperrors.ErrRequestParse, "пустой запрос", nil)
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrRequestParse, "запрос не является валидным JSON", err)
	}
	return &env, nil
}

// Type возвращает тип запроса.
// Запрос без type, но с интентом, считается IntentRequest.
func (e *Envelope) Type() string {
	if e.Request.Type != "" {
		return e.Request.Type
	}
	if e.Request.Intent != nil {
		return TypeIntent
	}
	return ""
}

// IntentName возвращает имя интента или пустую строку.
func (e *Envelope) IntentName() string {
	if e.Request.Intent == nil {
		return ""
	}
	return e.Request.Intent.Name
}

// Request — представление запроса для обработчика.
// Обработчик не должен изменять Envelope.
type Request struct {
	env *Envelope
}

// New создаёт представление над конвертом.
func New(env *Envelope) *Request {
	return &Request{env: env}
}

// Envelope возвращает исходный конверт запроса.
func (r *Request) Envelope() *Envelope { return r.env }

// Type возвращает тип запроса.
func (r *Request) Type() string { return r.env.Type() }

// IntentName возвращает имя интента.
func (r *Request) IntentName() string { return r.env.IntentName() }

// RequestID возвращает идентификатор запроса платформы.
func (r *Request) RequestID() string { return r.env.Request.RequestID }

// Locale возвращает локаль запроса, например "en-US".
func (r *Request) Locale() string { return r.env.Request.Locale }

// Slot возвращает значение слота или пустую строку.
func (r *Request) Slot(name string) string {
	v, _ := r.SlotValue(name)
	return v
}

// SlotValue возвращает значение слота и признак того, что значение задано.
func (r *Request) SlotValue(name string) (string, bool) {
	in := r.env.Request.Intent
	if in == nil || in.Slots == nil {
		return "", false
	}
	s, ok := in.Slots[name]
	if !ok || s.Value == "" {
		return "", false
	}
	return s.Value, true
}

// Slots возвращает копию всех заданных значений слотов.
func (r *Request) Slots() map[string]string {
	out := make(map[string]string)
	in := r.env.Request.Intent
	if in == nil {
		return out
	}
	for name, s := range in.Slots {
		if s.Value != "" {
			out[name] = s.Value
		}
	}
	return out
}

// UserID возвращает идентификатор пользователя, если сессия передана.
func (r *Request) UserID() string {
	if r.env.Session == nil || r.env.Session.User == nil {
		return ""
	}
	return r.env.Session.User.UserID
}

// AccessToken возвращает токен привязанного аккаунта.
// Пустая строка означает, что аккаунт не привязан.
func (r *Request) AccessToken() string {
	if r.env.Session == nil || r.env.Session.User == nil {
		return ""
	}
	return r.env.Session.User.AccessToken
}

// IsNewSession сообщает, открыта ли сессия этим запросом.
func (r *Request) IsNewSession() bool {
	return r.env.Session != nil && r.env.Session.New
}
