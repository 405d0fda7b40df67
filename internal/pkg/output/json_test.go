package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
)

// loadSchema загружает JSON Schema результата команды.
func loadSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(filepath.Join("testdata", "result.schema.json"))
	require.NoError(t, err, "не удалось загрузить JSON Schema")
	return schema
}

func TestJSONWriter_ImplementsWriter(_ *testing.T) {
	var _ Writer = (*JSONWriter)(nil)
}

func TestJSONWriter_Write_SchemaValidation(t *testing.T) {
	schema := loadSchema(t)

	summary := NewSummaryInfo()
	summary.AddMetric("Интентов", "3", "шт")

	tests := []struct {
		name   string
		result *Result
	}{
		{
			name: "успех",
			result: &Result{
				Status:   StatusSuccess,
				Command:  "intent-schema",
				Data:     map[string]any{"intents": []any{}},
				Metadata: &Metadata{DurationMs: 150, TraceID: "abc", APIVersion: "v1"},
				Summary:  summary,
			},
		},
		{
			name: "ошибка",
			result: NewErrorResult("handle-request",
				apperrors.NewAppError(apperrors.ErrIntentNotFound, "интент не найден", nil),
				&Metadata{DurationMs: 5, APIVersion: "v1"}),
		},
		{
			name:   "минимальный",
			result: &Result{Status: StatusSuccess, Command: "version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewJSONWriter().Write(&buf, tt.result))

			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.NoError(t, schema.Validate(doc))
		})
	}
}

func TestJSONWriter_Write_SummaryMovedToMetadata(t *testing.T) {
	summary := NewSummaryInfo()
	summary.AddWarning("интент без обработчика")
	meta := &Metadata{DurationMs: 1, APIVersion: "v1"}
	result := &Result{Status: StatusSuccess, Command: "utterances", Metadata: meta, Summary: summary}

	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter().Write(&buf, result))

	var parsed struct {
		Metadata struct {
			Summary *SummaryInfo `json:"summary"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.NotNil(t, parsed.Metadata.Summary)
	assert.Equal(t, 1, parsed.Metadata.Summary.WarningsCount)
	assert.Nil(t, meta.Summary, "входной result не должен изменяться")
}

func TestJSONWriter_Write_NilResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter().Write(&buf, nil))
	assert.Equal(t, "null\n", buf.String())
}

func TestJSONWriter_Write_NoHTMLEscaping(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter().Write(&buf, &Result{
		Status:  StatusSuccess,
		Command: "handle-request",
		Data:    map[string]string{"ssml": "<speak>rock & roll</speak>"},
	}))
	assert.Contains(t, buf.String(), `"ssml": "<speak>rock & roll</speak>"`)
}

func TestJSONWriter_Write_UnsupportedData(t *testing.T) {
	var buf bytes.Buffer
	err := NewJSONWriter().Write(&buf, &Result{Status: StatusSuccess, Command: "x", Data: make(chan int)})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrOutputFormat, apperrors.CodeOf(err))
}

func TestNewErrorInfo(t *testing.T) {
	assert.Nil(t, NewErrorInfo(nil))

	info := NewErrorInfo(apperrors.NewAppError(apperrors.ErrRequestParse, "пустой запрос", nil))
	assert.Equal(t, apperrors.ErrRequestParse, info.Code)

	info = NewErrorInfo(errors.New("сбой"))
	assert.Equal(t, apperrors.ErrCommandExec, info.Code)
	assert.Equal(t, "сбой", info.Message)
}
