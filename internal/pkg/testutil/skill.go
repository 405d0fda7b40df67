package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// AirportSkill — манифест тестового навыка.
const AirportSkill = `
name: airport
launch:
  say: Welcome to airport info
  shouldEndSession: false
intents:
  - name: AMAZON.PauseIntent
  - name: airportInfoIntent
    slots:
      AirportCode: FAACODES
      Awesome: AMAZON.DATE
    utterances:
      - airport info for {AirportCode}
      - status of {AirportCode}
    reply:
      say: Info for {AirportCode}
      card:
        title: radCard
        content: MyCard Content!
  - name: linkIntent
    utterances:
      - link my account
    reply:
      say: Please link your account
      linkAccount: true
`

// WriteSkill записывает манифест навыка во временный каталог теста
// и возвращает путь к файлу.
func WriteSkill(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skill.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "не удалось записать манифест")
	return path
}
