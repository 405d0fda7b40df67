package constants

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCommandNames проверяет, что имена команд соответствуют формату реестра.
func TestCommandNames(t *testing.T) {
	kebab := regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
	names := []string{
		ActIntentSchema, ActSchema, ActSkillBuilderSchema, ActUtterances,
		ActHandleRequest, ActSimulate, ActVersion, ActHelp,
	}

	seen := make(map[string]bool)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			assert.Regexp(t, kebab, name)
			assert.False(t, seen[name], "имя команды %q повторяется", name)
			seen[name] = true
		})
	}
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, "v1", APIVersion)
	assert.NotEmpty(t, Version)
	assert.Equal(t, LogLevelInfo, LogLevelDefault)
	assert.Equal(t, "skill.yaml", DefaultSkillFile)
}
