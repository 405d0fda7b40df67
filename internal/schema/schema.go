// Package schema собирает JSON-схемы интентов для голосовой платформы.
//
// Поддерживаются два диалекта, и у каждого свой сериализатор:
//   - Legacy ("intent schema"): ключ slots опускается, если слотов нет;
//   - SkillBuilder: ключ samples присутствует всегда, у каждого слота samples: [].
//
// Оба сериализатора — чистые функции над снимком реестра: повторный вызов
// на неизменённом реестре даёт побайтно одинаковый результат.
package schema

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/Kargones/voiceskill/internal/intent"
	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
)

// Source — источник интентов для сборки схем.
// Реализуется *intent.Registry.
type Source interface {
	// Intents возвращает интенты в порядке объявления.
	Intents() []intent.Intent
}

// Dialect — диалект схемы интентов.
type Dialect string

// Поддерживаемые диалекты.
const (
	DialectIntent       Dialect = "intent"
	DialectSkillBuilder Dialect = "skill-builder"
)

type legacyDocument struct {
	Intents []legacyIntent `json:"intents"`
}

type legacyIntent struct {
	Intent string       `json:"intent"`
	Slots  []legacySlot `json:"slots,omitempty"`
}

type legacySlot struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Legacy собирает схему в диалекте "intent schema":
//
//	{"intents": [{"intent": "name", "slots": [{"name": "...", "type": "..."}]}]}
//
// Ключ slots отсутствует у интентов без слотов (никогда не "slots": []).
func Legacy(src Source) ([]byte, error) {
	intents := src.Intents()
	doc := legacyDocument{Intents: make([]legacyIntent, 0, len(intents))}
	for _, in := range intents {
		li := legacyIntent{Intent: in.Name}
		for _, s := range in.Slots {
			li.Slots = append(li.Slots, legacySlot{Name: s.Name, Type: s.Type})
		}
		doc.Intents = append(doc.Intents, li)
	}
	return marshal(doc)
}

type skillBuilderDocument struct {
	Intents []skillBuilderIntent `json:"intents"`
}

type skillBuilderIntent struct {
	Name    string             `json:"name"`
	Samples []string           `json:"samples"`
	Slots   []skillBuilderSlot `json:"slots,omitempty"`
}

// skillBuilderSlot.Samples зарезервирован под привязку фраз к слоту
// и сейчас всегда пуст.
type skillBuilderSlot struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Samples []string `json:"samples"`
}

// SkillBuilder собирает схему в диалекте skill builder:
//
//	{"intents": [{"name": "...", "samples": [...], "slots": [{"name", "type", "samples": []}]}]}
//
// samples присутствует всегда (по умолчанию []), slots опускается при отсутствии слотов.
func SkillBuilder(src Source) ([]byte, error) {
	intents := src.Intents()
	doc := skillBuilderDocument{Intents: make([]skillBuilderIntent, 0, len(intents))}
	for _, in := range intents {
		si := skillBuilderIntent{Name: in.Name, Samples: make([]string, 0, len(in.Utterances))}
		si.Samples = append(si.Samples, in.Utterances...)
		for _, s := range in.Slots {
			si.Slots = append(si.Slots, skillBuilderSlot{Name: s.Name, Type: s.Type, Samples: []string{}})
		}
		doc.Intents = append(doc.Intents, si)
	}
	return marshal(doc)
}

// Utterances собирает примеры фраз в текстовом формате платформы:
// одна строка "ИмяИнтента фраза" на каждую фразу, в порядке объявления.
func Utterances(src Source) string {
	var sb strings.Builder
	for _, in := range src.Intents() {
		for _, u := range in.Utterances {
			sb.WriteString(in.Name)
			sb.WriteByte(' ')
			sb.WriteString(u)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Compile собирает схему указанного диалекта.
func Compile(d Dialect, src Source) ([]byte, error) {
	switch d {
	case DialectIntent:
		return Legacy(src)
	case DialectSkillBuilder:
		return SkillBuilder(src)
	default:
		return nil, apperrors.NewAppError(apperrors.ErrSchemaInvalid,
			"неизвестный диалект схемы: "+string(d), nil)
	}
}

// marshal сериализует документ с отступами. Фразы выводятся как есть:
// без экранирования &, < и >.
func marshal(doc any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrOutputFormat, "не удалось сериализовать схему", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
