// Package intent содержит модель интентов навыка и упорядоченный реестр,
// из которого строятся схемы для голосовой платформы.
package intent

// Slot — именованный типизированный параметр интента.
type Slot struct {
	// Name — имя слота, например "AirportCode".
	Name string
	// Type — тип слота платформы ("AMAZON.DATE") или пользовательский тип ("FAACODES").
	Type string
}

// Options — конфигурация интента при регистрации.
//
// Значения по умолчанию:
//   - Slots: нет слотов (nil и пустой срез эквивалентны)
//   - Utterances: пустой список примеров
type Options struct {
	// Slots перечисляет слоты в порядке объявления.
	// Порядок сохраняется во всех схемах.
	Slots []Slot

	// Utterances — примеры фраз пользователя для модели речи платформы.
	Utterances []string
}

// Intent — объявленный интент навыка.
type Intent struct {
	Name       string
	Slots      []Slot
	Utterances []string
}

// HasSlots сообщает, объявлен ли у интента хотя бы один слот.
func (i Intent) HasSlots() bool {
	return len(i.Slots) > 0
}

// clone возвращает глубокую копию интента.
// Utterances никогда не nil в копии.
func (i Intent) clone() Intent {
	out := Intent{Name: i.Name, Utterances: make([]string, len(i.Utterances))}
	copy(out.Utterances, i.Utterances)
	if len(i.Slots) > 0 {
		out.Slots = make([]Slot, len(i.Slots))
		copy(out.Slots, i.Slots)
	}
	return out
}
