package schema

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// schemaBaseURL — базовый URL ресурсов в компиляторе jsonschema.
// Схемы загружаются только из embed, сеть не используется.
const schemaBaseURL = "https://voiceskill.local/schemas/"

var schemaFiles = map[Dialect]string{
	DialectIntent:       "intent.schema.json",
	DialectSkillBuilder: "skill_builder.schema.json",
}

var (
	compileOnce sync.Once
	compiled    map[Dialect]*jsonschema.Schema
	compileErr  error
)

// Validate проверяет документ диалекта d по встроенной JSON Schema.
// Ошибки имеют код apperrors.ErrSchemaInvalid.
func Validate(d Dialect, doc []byte) error {
	schemas, err := loadSchemas()
	if err != nil {
		return err
	}
	sch, ok := schemas[d]
	if !ok {
		return apperrors.NewAppError(apperrors.ErrSchemaInvalid,
			"неизвестный диалект схемы: "+string(d), nil)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrSchemaInvalid, "документ схемы не является валидным JSON", err)
	}
	if err := sch.Validate(inst); err != nil {
		return apperrors.NewAppError(apperrors.ErrSchemaInvalid,
			fmt.Sprintf("документ не соответствует диалекту %s", d), err)
	}
	return nil
}

func loadSchemas() (map[Dialect]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		result := make(map[Dialect]*jsonschema.Schema, len(schemaFiles))
		for d, file := range schemaFiles {
			raw, err := schemaFS.ReadFile("schemas/" + file)
			if err != nil {
				compileErr = fmt.Errorf("чтение встроенной схемы %s: %w", file, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				compileErr = fmt.Errorf("разбор встроенной схемы %s: %w", file, err)
				return
			}
			if err := c.AddResource(schemaBaseURL+file, doc); err != nil {
				compileErr = fmt.Errorf("регистрация схемы %s: %w", file, err)
				return
			}
			sch, err := c.Compile(schemaBaseURL + file)
			if err != nil {
				compileErr = fmt.Errorf("компиляция схемы %s: %w", file, err)
				return
			}
			result[d] = sch
		}
		compiled = result
	})
	if compileErr != nil {
		return nil, apperrors.NewAppError(apperrors.ErrSchemaInvalid, "встроенные JSON Schema недоступны", compileErr)
	}
	return compiled, nil
}
