// Package manifest загружает декларативное описание навыка из YAML.
//
// Пример манифеста:
//
//	name: airport
//	launch:
//	  say: Welcome to airport info
//	  shouldEndSession: false
//	intents:
//	  - name: airportInfoIntent
//	    slots:
//	      AirportCode: FAACODES
//	    utterances:
//	      - airport info for {AirportCode}
//	    reply:
//	      say: Info for {AirportCode}
//	      card: {title: Airport, content: "{AirportCode}"}
//
// Порядок слотов берётся из порядка ключей YAML.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Kargones/voiceskill/internal/intent"
	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
	"github.com/Kargones/voiceskill/internal/skill"
)

// Manifest — описание навыка.
type Manifest struct {
	Name         string       `yaml:"name"`
	Launch       *Reply       `yaml:"launch"`
	SessionEnded *Reply       `yaml:"sessionEnded"`
	Intents      []IntentDecl `yaml:"intents"`
}

// IntentDecl — объявление интента в манифесте.
type IntentDecl struct {
	Name       string        `yaml:"name"`
	Slots      []intent.Slot `yaml:"-"`
	Utterances []string      `yaml:"utterances"`
	// Reply задаёт декларативный ответ. Интент без reply попадает
	// только в схему.
	Reply *Reply `yaml:"reply"`
}

// intentDoc — форма IntentDecl в YAML. Слоты читаются как узел,
// чтобы сохранить порядок ключей и проверить типы значений.
type intentDoc struct {
	Name       string    `yaml:"name"`
	Slots      yaml.Node `yaml:"slots"`
	Utterances []string  `yaml:"utterances"`
	Reply      *Reply    `yaml:"reply"`
}

// UnmarshalYAML читает объявление интента.
func (d *IntentDecl) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			switch key := node.Content[i]; key.Value {
			case "name", "slots", "utterances", "reply":
			default:
				return fmt.Errorf("строка %d: неизвестное поле интента %q", key.Line, key.Value)
			}
		}
	}
	var doc intentDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	slots, err := decodeSlots(doc.Name, &doc.Slots)
	if err != nil {
		return err
	}
	*d = IntentDecl{
		Name:       doc.Name,
		Slots:      slots,
		Utterances: doc.Utterances,
		Reply:      doc.Reply,
	}
	return nil
}

// decodeSlots читает mapping "имя слота: тип" в порядке объявления.
func decodeSlots(intentName string, node *yaml.Node) ([]intent.Slot, error) {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, invalidSlots(intentName, node.Line, "slots должен быть mapping \"имя: тип\"")
	}
	slots := make([]intent.Slot, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.ScalarNode || val.Tag != "!!str" {
			return nil, invalidSlots(intentName, val.Line,
				fmt.Sprintf("тип слота %s должен быть строкой", key.Value))
		}
		slots = append(slots, intent.Slot{Name: key.Value, Type: val.Value})
	}
	return slots, nil
}

func invalidSlots(intentName string, line int, msg string) error {
	return apperrors.NewAppError(apperrors.ErrIntentInvalidConfig,
		fmt.Sprintf("интент %s, строка %d: %s", intentName, line, msg), nil)
}

// Load читает манифест из r.
func Load(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.NewAppError(apperrors.ErrManifestLoad, "манифест пуст", nil)
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.NewAppError(apperrors.ErrManifestLoad, "не удалось разобрать манифест", err)
	}
	if m.Name == "" {
		return nil, apperrors.NewAppError(apperrors.ErrManifestLoad, "в манифесте не задано имя навыка", nil)
	}
	return &m, nil
}

// LoadFile читает манифест из файла.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrManifestLoad,
			fmt.Sprintf("не удалось прочитать манифест %s", path), err)
	}
	return Load(bytes.NewReader(data))
}

// Build создаёт навык по манифесту.
// Ошибки объявления интентов возвращаются с кодом INTENT.INVALID_CONFIG.
func (m *Manifest) Build(opts ...skill.Option) (*skill.App, error) {
	app := skill.New(m.Name, opts...)
	for _, d := range m.Intents {
		var h skill.HandlerFunc
		if d.Reply != nil {
			h = d.Reply.Handler()
		}
		err := app.Intent(d.Name, intent.Options{Slots: d.Slots, Utterances: d.Utterances}, h)
		if err != nil {
			return nil, err
		}
	}
	if m.Launch != nil {
		app.Launch(m.Launch.Handler())
	}
	if m.SessionEnded != nil {
		app.SessionEnded(m.SessionEnded.Handler())
	}
	return app, nil
}
