// Package help реализует команду help: список зарегистрированных команд
// и переменных окружения.
package help

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Kargones/voiceskill/internal/command"
	"github.com/Kargones/voiceskill/internal/command/handlers/shared"
	"github.com/Kargones/voiceskill/internal/config"
	"github.com/Kargones/voiceskill/internal/constants"
)

// RegisterCmd регистрирует команду help.
func RegisterCmd() {
	command.Register(&Handler{})
}

// Data содержит информацию обо всех доступных командах.
type Data struct {
	Commands []CommandInfo `json:"commands"`
	// Environment — описание переменных окружения. В JSON не выводится.
	Environment string `json:"-"`
}

// CommandInfo описывает одну команду.
type CommandInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Deprecated — true для устаревшего имени команды.
	Deprecated bool `json:"deprecated,omitempty"`
	// NewName — актуальное имя устаревшей команды.
	NewName string `json:"new_name,omitempty"`
}

// Handler обрабатывает команду help.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActHelp
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Вывод списка доступных команд"
}

// Execute собирает список команд и выводит результат.
// cfg может быть nil: help вызывается и при ошибке конфигурации.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	data := buildData()

	if !shared.IsJSON(cfg) {
		if env, err := config.Usage(); err == nil {
			data.Environment = env
		}
		return data.writeText(os.Stdout)
	}
	return shared.WriteResult(ctx, cfg, constants.ActHelp, start, data, nil)
}

// buildData собирает команды из реестра, отсортированные по имени.
func buildData() *Data {
	data := &Data{}
	for name, handler := range command.All() {
		info := CommandInfo{Name: name, Description: handler.Description()}
		if dep, ok := handler.(command.Deprecatable); ok && dep.IsDeprecated() {
			info.Deprecated = true
			info.NewName = dep.NewName()
		}
		data.Commands = append(data.Commands, info)
	}
	sort.Slice(data.Commands, func(i, j int) bool {
		return data.Commands[i].Name < data.Commands[j].Name
	})
	return data
}

// writeText выводит информацию о командах в человекочитаемом формате.
func (d *Data) writeText(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("voiceskill — фреймворк навыков голосового ассистента\n")
	sb.WriteString("\nИспользование: voiceskill <команда>\n")
	sb.WriteString("\nКоманды:\n")

	maxLen := 0
	for _, cmd := range d.Commands {
		maxLen = max(maxLen, len(cmd.Name))
	}
	for _, cmd := range d.Commands {
		desc := cmd.Description
		if cmd.Deprecated {
			desc = fmt.Sprintf("[deprecated → %s] %s", cmd.NewName, desc)
		}
		fmt.Fprintf(&sb, "  %-*s  %s\n", maxLen, cmd.Name, desc)
	}

	if d.Environment != "" {
		sb.WriteString("\n")
		sb.WriteString(d.Environment)
		if !strings.HasSuffix(d.Environment, "\n") {
			sb.WriteString("\n")
		}
	}

	_, err := fmt.Fprint(w, sb.String())
	return err
}
