package manifest

import (
	"context"
	"html"
	"regexp"

	"github.com/Kargones/voiceskill/internal/pkg/logging"
	"github.com/Kargones/voiceskill/internal/request"
	"github.com/Kargones/voiceskill/internal/response"
	"github.com/Kargones/voiceskill/internal/skill"
)

// Reply — декларативный ответ. Строки могут содержать {ИмяСлота}.
type Reply struct {
	Say         string `yaml:"say"`
	Reprompt    string `yaml:"reprompt"`
	Card        *Card  `yaml:"card"`
	LinkAccount bool   `yaml:"linkAccount"`
	// ShouldEndSession не задан — сессия завершается.
	ShouldEndSession *bool `yaml:"shouldEndSession"`
}

// Card — карточка ответа. Заданный text или изображение дают
// Standard-карточку, иначе Simple.
type Card struct {
	Title         string `yaml:"title"`
	Content       string `yaml:"content"`
	Text          string `yaml:"text"`
	SmallImageURL string `yaml:"smallImageUrl"`
	LargeImageURL string `yaml:"largeImageUrl"`
}

func (c *Card) standard() bool {
	return c.Text != "" || c.SmallImageURL != "" || c.LargeImageURL != ""
}

var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_.]+)\}`)

// substitute заменяет {ИмяСлота} значением слота, пропущенным через escape.
// Незаданный слот заменяется пустой строкой.
func substitute(s string, req *request.Request, escape func(string) string) string {
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		return escape(req.Slot(m[1 : len(m)-1]))
	})
}

func plain(s string) string { return s }

// Handler возвращает обработчик, наполняющий ответ по Reply.
func (r *Reply) Handler() skill.HandlerFunc {
	reply := *r
	return func(ctx context.Context, req *request.Request, res *response.Builder) skill.Completion {
		// Речь уходит в SSML: значения слотов экранируются, разметка
		// из манифеста остаётся. Карточки — простой текст.
		fill := func(s string) string { return substitute(s, req, plain) }
		speech := func(s string) string { return substitute(s, req, html.EscapeString) }

		if reply.Say != "" {
			res.Say(speech(reply.Say))
		}
		if reply.Reprompt != "" {
			res.Reprompt(speech(reply.Reprompt))
		}
		switch {
		case reply.LinkAccount:
			res.LinkAccount()
		case reply.Card != nil && reply.Card.standard():
			var img *response.CardImage
			if reply.Card.SmallImageURL != "" || reply.Card.LargeImageURL != "" {
				img = &response.CardImage{
					SmallImageURL: reply.Card.SmallImageURL,
					LargeImageURL: reply.Card.LargeImageURL,
				}
			}
			res.StandardCard(fill(reply.Card.Title), fill(reply.Card.Text), img)
		case reply.Card != nil:
			res.Card(fill(reply.Card.Title), fill(reply.Card.Content))
		}
		if reply.ShouldEndSession != nil {
			res.ShouldEndSession(*reply.ShouldEndSession)
		}

		logging.FromContext(ctx).Debug("ответ собран из манифеста", "slots", len(req.Slots()))
		return skill.Done()
	}
}
