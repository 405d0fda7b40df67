package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/voiceskill/internal/constants"
	"github.com/Kargones/voiceskill/internal/pkg/output"
	"github.com/Kargones/voiceskill/internal/pkg/testutil"
)

// inEmptyDir запускает тест в пустом каталоге без voiceskill.yaml
// и с чистыми VS_* переменными.
func inEmptyDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{"VS_COMMAND", "VS_CONFIG", "VS_SKILL_FILE", "VS_REQUEST_FILE",
		"VS_OUTPUT_FORMAT", "VS_SIMULATE_INTENT", "VS_SIMULATE_SLOTS", "VS_SIMULATE_TYPE"} {
		t.Setenv(key, "")
	}
	t.Setenv("VS_LOG_LEVEL", "error")
	return dir
}

func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
		want int
	}{
		{"version", []string{"version"}, nil, exitOK},
		{"пустая команда — help", nil, nil, exitOK},
		{"неизвестная команда", []string{"nope"}, nil, exitUnknownCommand},
		{"неверный формат вывода", []string{"version"}, map[string]string{"VS_OUTPUT_FORMAT": "xml"}, exitConfigError},
		{"нет манифеста", []string{"intent-schema"}, map[string]string{"VS_SKILL_FILE": "missing.yaml"}, exitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inEmptyDir(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var code int
			testutil.CaptureStdout(t, func() {
				testutil.CaptureStderr(t, func() {
					code = run(tt.args)
				})
			})
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestRun_IntentSchemaJSON(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("VS_SKILL_FILE", testutil.WriteSkill(t, testutil.AirportSkill))
	t.Setenv("VS_OUTPUT_FORMAT", output.FormatJSON)

	var code int
	out := testutil.CaptureStdout(t, func() {
		code = run([]string{constants.ActIntentSchema})
	})
	require.Equal(t, exitOK, code)

	var result struct {
		Status   string          `json:"status"`
		Command  string          `json:"command"`
		Data     json.RawMessage `json:"data"`
		Metadata output.Metadata `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	assert.Equal(t, output.StatusSuccess, result.Status)
	assert.Equal(t, constants.ActIntentSchema, result.Command)
	assert.Len(t, result.Metadata.TraceID, 32)
	assert.Contains(t, string(result.Data), "airportInfoIntent")
}

func TestRun_DeprecatedAlias(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("VS_SKILL_FILE", testutil.WriteSkill(t, testutil.AirportSkill))
	t.Setenv("VS_LOG_LEVEL", "warn")

	var code int
	var out string
	stderr := testutil.CaptureStderr(t, func() {
		out = testutil.CaptureStdout(t, func() {
			code = run([]string{constants.ActSchema})
		})
	})
	require.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "вызвана устаревшая команда")
	assert.Contains(t, out, `"intent": "airportInfoIntent"`)
}

func TestRun_HandleRequest(t *testing.T) {
	dir := inEmptyDir(t)
	reqPath := filepath.Join(dir, "request.json")
	require.NoError(t, os.WriteFile(reqPath,
		[]byte(`{"request":{"type":"IntentRequest","intent":{"name":"airportInfoIntent",`+
			`"slots":{"AirportCode":{"name":"AirportCode","value":"JFK"}}}}}`), 0o600))
	t.Setenv("VS_SKILL_FILE", testutil.WriteSkill(t, testutil.AirportSkill))
	t.Setenv("VS_REQUEST_FILE", reqPath)

	var code int
	out := testutil.CaptureStdout(t, func() {
		code = run([]string{constants.ActHandleRequest})
	})
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "<speak>Info for JFK</speak>")
}

func TestRun_Simulate(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("VS_SKILL_FILE", testutil.WriteSkill(t, testutil.AirportSkill))
	t.Setenv("VS_SIMULATE_INTENT", "linkIntent")

	var code int
	out := testutil.CaptureStdout(t, func() {
		code = run([]string{constants.ActSimulate})
	})
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, `"type": "LinkAccount"`)
}

func TestRun_DefaultSkillFile(t *testing.T) {
	dir := inEmptyDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.DefaultSkillFile),
		[]byte(testutil.AirportSkill), 0o600))

	var code int
	out := testutil.CaptureStdout(t, func() {
		code = run([]string{constants.ActUtterances})
	})
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "linkIntent link my account\n")
}
