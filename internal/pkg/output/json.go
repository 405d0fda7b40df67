package output

import (
	"encoding/json"
	"io"

	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
)

// JSONWriter форматирует Result в JSON с отступами.
type JSONWriter struct{}

// NewJSONWriter создаёт новый JSONWriter.
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

// Write сериализует result в JSON и записывает в w.
// Summary переносится в Metadata.Summary; входной result не изменяется.
func (j *JSONWriter) Write(w io.Writer, result *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if result == nil {
		return encoder.Encode(result)
	}

	out := *result
	if result.Summary != nil && result.Metadata != nil {
		metaCopy := *result.Metadata
		metaCopy.Summary = result.Summary
		out.Metadata = &metaCopy
	}

	if err := encoder.Encode(&out); err != nil {
		return apperrors.NewAppError(apperrors.ErrOutputFormat, "не удалось сериализовать результат", err)
	}
	return nil
}
