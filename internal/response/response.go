// Package response накапливает ответ обработчика интента и сериализует
// его в конверт ответа голосовой платформы.
package response

import "strings"

// Типы карточек платформы.
const (
	CardSimple      = "Simple"
	CardStandard    = "Standard"
	CardLinkAccount = "LinkAccount"
)

// SpeechTypeSSML — тип outputSpeech. Builder всегда отдаёт речь в SSML.
const SpeechTypeSSML = "SSML"

// Version — версия формата ответа платформы.
const Version = "1.0"

// Envelope — конверт ответа платформы.
type Envelope struct {
	Version  string `json:"version"`
	Response Body   `json:"response"`
}

// Body — тело ответа. Поля присутствуют только если заданы,
// кроме shouldEndSession.
type Body struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

// OutputSpeech — речь ответа.
type OutputSpeech struct {
	SSML string `json:"ssml"`
	Type string `json:"type"`
}

// Reprompt — речь, которую платформа произнесёт, если пользователь промолчал.
type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

// Card — карточка в приложении-компаньоне.
// Набор заполненных полей зависит от Type:
//   - LinkAccount: только type
//   - Simple: title, content
//   - Standard: title, text, image
type Card struct {
	Type    string     `json:"type"`
	Title   string     `json:"title,omitempty"`
	Content string     `json:"content,omitempty"`
	Text    string     `json:"text,omitempty"`
	Image   *CardImage `json:"image,omitempty"`
}

// CardImage — изображения Standard-карточки.
type CardImage struct {
	SmallImageURL string `json:"smallImageUrl,omitempty"`
	LargeImageURL string `json:"largeImageUrl,omitempty"`
}

// Builder накапливает ответ одного вызова обработчика.
//
// Builder принадлежит единственному вызову обработчика и не используется
// повторно после Build. Методы возвращают сам Builder для цепочек:
//
//	res.Say("tubular!").Card("radCard", "MyCard Content!")
//
// Повторные вызовы Say, Reprompt и методов карточек перезаписывают
// предыдущее значение: в ответе не больше одной речи и одной карточки.
type Builder struct {
	speech           *string
	reprompt         *string
	card             *Card
	shouldEndSession bool
}

// NewBuilder создаёт пустой Builder. По умолчанию сессия завершается.
func NewBuilder() *Builder {
	return &Builder{shouldEndSession: true}
}

// Say задаёт речь ответа. Текст оборачивается в <speak> при сериализации.
func (b *Builder) Say(text string) *Builder {
	b.speech = &text
	return b
}

// Reprompt задаёт речь повторного запроса.
func (b *Builder) Reprompt(text string) *Builder {
	b.reprompt = &text
	return b
}

// Card задаёт Simple-карточку.
func (b *Builder) Card(title, content string) *Builder {
	b.card = &Card{Type: CardSimple, Title: title, Content: content}
	return b
}

// StandardCard задаёт Standard-карточку с изображением.
// image может быть nil.
func (b *Builder) StandardCard(title, text string, image *CardImage) *Builder {
	var img *CardImage
	if image != nil {
		c := *image
		img = &c
	}
	b.card = &Card{Type: CardStandard, Title: title, Text: text, Image: img}
	return b
}

// LinkAccount задаёт карточку привязки аккаунта.
// Заменяет ранее заданную карточку, речь не затрагивает.
func (b *Builder) LinkAccount() *Builder {
	b.card = &Card{Type: CardLinkAccount}
	return b
}

// ShouldEndSession задаёт, завершать ли сессию после ответа.
func (b *Builder) ShouldEndSession(end bool) *Builder {
	b.shouldEndSession = end
	return b
}

// Build сериализует накопленное состояние в конверт ответа.
func (b *Builder) Build() *Envelope {
	env := &Envelope{
		Version:  Version,
		Response: Body{ShouldEndSession: b.shouldEndSession},
	}
	if b.speech != nil {
		env.Response.OutputSpeech = &OutputSpeech{SSML: SSML(*b.speech), Type: SpeechTypeSSML}
	}
	if b.reprompt != nil {
		env.Response.Reprompt = &Reprompt{
			OutputSpeech: OutputSpeech{SSML: SSML(*b.reprompt), Type: SpeechTypeSSML},
		}
	}
	if b.card != nil {
		c := *b.card
		env.Response.Card = &c
	}
	return env
}

const (
	speakOpen  = "<speak>"
	speakClose = "</speak>"
)

// SSML оборачивает текст в <speak>…</speak>.
// Текст, уже обёрнутый в <speak>, повторно не оборачивается.
func SSML(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, speakOpen) && strings.HasSuffix(trimmed, speakClose) {
		return trimmed
	}
	return speakOpen + text + speakClose
}
