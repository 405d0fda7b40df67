package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/voiceskill/internal/intent"
	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
)

// newRegistry собирает реестр с интентами в заданном порядке.
func newRegistry(t *testing.T, decls ...func(r *intent.Registry) error) *intent.Registry {
	t.Helper()
	r := intent.NewRegistry()
	for _, d := range decls {
		require.NoError(t, d(r))
	}
	return r
}

func pause(r *intent.Registry) error {
	return r.Register("AMAZON.PauseIntent", intent.Options{})
}

func pauseEmptySlots(r *intent.Registry) error {
	return r.Register("AMAZON.PauseIntent", intent.Options{Slots: []intent.Slot{}})
}

func testIntentTwo(r *intent.Registry) error {
	return r.Register("testIntentTwo", intent.Options{Slots: []intent.Slot{
		{Name: "MyCustomSlotType", Type: "CUSTOMTYPE"},
		{Name: "Tubular", Type: "AMAZON.LITERAL"},
		{Name: "Radical", Type: "AMAZON.US_STATE"},
	}})
}

func testIntent(r *intent.Registry) error {
	return r.Register("testIntent", intent.Options{Slots: []intent.Slot{
		{Name: "AirportCode", Type: "FAACODES"},
		{Name: "Awesome", Type: "AMAZON.DATE"},
		{Name: "Tubular", Type: "AMAZON.LITERAL"},
	}})
}

func TestLegacy(t *testing.T) {
	tests := []struct {
		name     string
		decls    []func(*intent.Registry) error
		expected string
	}{
		{
			name:     "минимальный интент без слотов",
			decls:    []func(*intent.Registry) error{pause},
			expected: `{"intents":[{"intent":"AMAZON.PauseIntent"}]}`,
		},
		{
			name:     "пустые слоты",
			decls:    []func(*intent.Registry) error{pauseEmptySlots},
			expected: `{"intents":[{"intent":"AMAZON.PauseIntent"}]}`,
		},
		{
			name:  "интент со слотами",
			decls: []func(*intent.Registry) error{testIntentTwo},
			expected: `{"intents":[{"intent":"testIntentTwo","slots":[
				{"name":"MyCustomSlotType","type":"CUSTOMTYPE"},
				{"name":"Tubular","type":"AMAZON.LITERAL"},
				{"name":"Radical","type":"AMAZON.US_STATE"}]}]}`,
		},
		{
			name:  "несколько интентов",
			decls: []func(*intent.Registry) error{pause, testIntentTwo, testIntent},
			expected: `{"intents":[
				{"intent":"AMAZON.PauseIntent"},
				{"intent":"testIntentTwo","slots":[
					{"name":"MyCustomSlotType","type":"CUSTOMTYPE"},
					{"name":"Tubular","type":"AMAZON.LITERAL"},
					{"name":"Radical","type":"AMAZON.US_STATE"}]},
				{"intent":"testIntent","slots":[
					{"name":"AirportCode","type":"FAACODES"},
					{"name":"Awesome","type":"AMAZON.DATE"},
					{"name":"Tubular","type":"AMAZON.LITERAL"}]}]}`,
		},
		{
			name:     "пустой реестр",
			expected: `{"intents":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRegistry(t, tt.decls...)
			got, err := Legacy(r)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(got))
			assert.NoError(t, Validate(DialectIntent, got), "схема должна проходить JSON Schema диалекта")
		})
	}
}

func TestLegacy_NeverEmitsEmptySlots(t *testing.T) {
	r := newRegistry(t, pause, pauseEmptySlots)
	got, err := Legacy(r)
	require.NoError(t, err)

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(got, &doc))
	for _, in := range doc["intents"] {
		_, hasSlots := in["slots"]
		assert.False(t, hasSlots, "ключ slots не должен присутствовать: %v", in)
	}
}

func TestSkillBuilder(t *testing.T) {
	tests := []struct {
		name     string
		decls    []func(*intent.Registry) error
		expected string
	}{
		{
			name:     "минимальный интент",
			decls:    []func(*intent.Registry) error{pause},
			expected: `{"intents":[{"name":"AMAZON.PauseIntent","samples":[]}]}`,
		},
		{
			name:     "пустые слоты",
			decls:    []func(*intent.Registry) error{pauseEmptySlots},
			expected: `{"intents":[{"name":"AMAZON.PauseIntent","samples":[]}]}`,
		},
		{
			name: "интент со слотами",
			decls: []func(*intent.Registry) error{func(r *intent.Registry) error {
				return r.Register("testIntent", intent.Options{Slots: []intent.Slot{
					{Name: "Tubular", Type: "AMAZON.LITERAL"},
					{Name: "Radical", Type: "AMAZON.US_STATE"},
				}})
			}},
			expected: `{"intents":[{"name":"testIntent","samples":[],"slots":[
				{"name":"Tubular","type":"AMAZON.LITERAL","samples":[]},
				{"name":"Radical","type":"AMAZON.US_STATE","samples":[]}]}]}`,
		},
		{
			name: "простые фразы",
			decls: []func(*intent.Registry) error{func(r *intent.Registry) error {
				return r.Register("testIntent", intent.Options{
					Utterances: []string{"turn on the thermostat", "kill all humans"},
				})
			}},
			expected: `{"intents":[{"name":"testIntent","samples":["turn on the thermostat","kill all humans"]}]}`,
		},
		{
			name:  "несколько интентов",
			decls: []func(*intent.Registry) error{pause, testIntentTwo, testIntent},
			expected: `{"intents":[
				{"name":"AMAZON.PauseIntent","samples":[]},
				{"name":"testIntentTwo","samples":[],"slots":[
					{"name":"MyCustomSlotType","type":"CUSTOMTYPE","samples":[]},
					{"name":"Tubular","type":"AMAZON.LITERAL","samples":[]},
					{"name":"Radical","type":"AMAZON.US_STATE","samples":[]}]},
				{"name":"testIntent","samples":[],"slots":[
					{"name":"AirportCode","type":"FAACODES","samples":[]},
					{"name":"Awesome","type":"AMAZON.DATE","samples":[]},
					{"name":"Tubular","type":"AMAZON.LITERAL","samples":[]}]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRegistry(t, tt.decls...)
			got, err := SkillBuilder(r)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(got))
			assert.NoError(t, Validate(DialectSkillBuilder, got))
		})
	}
}

func TestCompile_NoHTMLEscaping(t *testing.T) {
	r := newRegistry(t, func(r *intent.Registry) error {
		return r.Register("musicIntent", intent.Options{Utterances: []string{"rock & roll <now>"}})
	})

	for _, d := range []Dialect{DialectIntent, DialectSkillBuilder} {
		got, err := Compile(d, r)
		require.NoError(t, err)
		assert.NotContains(t, string(got), `\u00`, "диалект %s", d)
		assert.NotEqual(t, byte('\n'), got[len(got)-1], "без завершающего перевода строки")
	}

	got, err := SkillBuilder(r)
	require.NoError(t, err)
	assert.Contains(t, string(got), `"rock & roll <now>"`)
	assert.NoError(t, Validate(DialectSkillBuilder, got))
}

func TestCompile_Idempotent(t *testing.T) {
	r := newRegistry(t, pause, testIntentTwo, testIntent)

	for _, d := range []Dialect{DialectIntent, DialectSkillBuilder} {
		first, err := Compile(d, r)
		require.NoError(t, err)
		second, err := Compile(d, r)
		require.NoError(t, err)
		assert.Equal(t, first, second, "повторная сборка %s должна давать одинаковые байты", d)
	}
}

func TestCompile_UnknownDialect(t *testing.T) {
	_, err := Compile(Dialect("nope"), intent.NewRegistry())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrSchemaInvalid, apperrors.CodeOf(err))
}

func TestUtterances(t *testing.T) {
	r := intent.NewRegistry()
	require.NoError(t, r.Register("AMAZON.PauseIntent", intent.Options{}))
	require.NoError(t, r.Register("thermostatIntent", intent.Options{
		Utterances: []string{"turn on the thermostat", "make it warmer"},
	}))
	require.NoError(t, r.Register("airportInfoIntent", intent.Options{
		Slots:      []intent.Slot{{Name: "AirportCode", Type: "FAACODES"}},
		Utterances: []string{"airport info for {AirportCode}"},
	}))

	expected := "thermostatIntent turn on the thermostat\n" +
		"thermostatIntent make it warmer\n" +
		"airportInfoIntent airport info for {AirportCode}\n"
	assert.Equal(t, expected, Utterances(r))
	assert.Equal(t, "", Utterances(intent.NewRegistry()))
}

func TestValidate_RejectsEmptySlotsArray(t *testing.T) {
	doc := []byte(`{"intents":[{"intent":"AMAZON.PauseIntent","slots":[]}]}`)
	err := Validate(DialectIntent, doc)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrSchemaInvalid, apperrors.CodeOf(err))
}

func TestValidate_RejectsMissingSamples(t *testing.T) {
	doc := []byte(`{"intents":[{"name":"testIntent"}]}`)
	err := Validate(DialectSkillBuilder, doc)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrSchemaInvalid, apperrors.CodeOf(err))
}

func TestValidate_InvalidJSON(t *testing.T) {
	err := Validate(DialectIntent, []byte(`{not json`))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrSchemaInvalid, apperrors.CodeOf(err))
}
