// Package version реализует команду version: версия приложения, сборки
// и устаревшие имена команд.
package version

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/Kargones/voiceskill/internal/command"
	"github.com/Kargones/voiceskill/internal/command/handlers/shared"
	"github.com/Kargones/voiceskill/internal/config"
	"github.com/Kargones/voiceskill/internal/constants"
)

// RegisterCmd регистрирует команду version.
func RegisterCmd() {
	command.Register(&VersionHandler{})
}

// VersionData содержит информацию о версии приложения.
type VersionData struct {
	// Version — полная версия приложения.
	Version string `json:"version"`

	// GoVersion — версия Go, использованная при сборке.
	GoVersion string `json:"go_version"`

	// Commit — хеш коммита на момент сборки.
	Commit string `json:"commit"`

	// Aliases — устаревшие имена команд.
	Aliases []AliasEntry `json:"aliases"`
}

// AliasEntry связывает команду с её устаревшим именем.
type AliasEntry struct {
	Command         string `json:"command"`
	DeprecatedAlias string `json:"deprecated_alias"`
}

// writeText выводит информацию о версии в человекочитаемом формате.
func (d *VersionData) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "voiceskill version %s\n  Go:     %s\n  Commit: %s\n",
		d.Version, d.GoVersion, d.Commit)
	if err != nil {
		return err
	}

	if len(d.Aliases) == 0 {
		return nil
	}
	if _, err = fmt.Fprintln(w, "\nУстаревшие имена:"); err != nil {
		return err
	}
	for _, a := range d.Aliases {
		if _, err = fmt.Fprintf(w, "  %-20s → %s\n", a.DeprecatedAlias, a.Command); err != nil {
			return err
		}
	}
	return nil
}

// buildVersionData создаёт VersionData с fallback значениями.
// Если version пустой — используется "dev", если commit пустой — "unknown".
func buildVersionData(version, commit string) *VersionData {
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	return &VersionData{
		Version:   version,
		GoVersion: runtime.Version(),
		Commit:    commit,
		Aliases:   buildAliases(),
	}
}

// buildAliases собирает устаревшие имена из реестра команд.
func buildAliases() []AliasEntry {
	entries := make([]AliasEntry, 0)
	for _, cmd := range command.ListAllWithAliases() {
		if cmd.DeprecatedAlias == "" {
			continue
		}
		entries = append(entries, AliasEntry{Command: cmd.Name, DeprecatedAlias: cmd.DeprecatedAlias})
	}
	return entries
}

// VersionHandler обрабатывает команду version.
type VersionHandler struct{}

// Name возвращает имя команды.
func (h *VersionHandler) Name() string {
	return constants.ActVersion
}

// Description возвращает описание команды для вывода в help.
func (h *VersionHandler) Description() string {
	return "Вывод информации о версии приложения"
}

// Execute выводит версию. Текстовый формат компактный, без metadata;
// trace_id и duration_ms есть только в JSON.
func (h *VersionHandler) Execute(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	data := buildVersionData(constants.Version, constants.PreCommitHash)

	if !shared.IsJSON(cfg) {
		return data.writeText(os.Stdout)
	}
	return shared.WriteResult(ctx, cfg, constants.ActVersion, start, data, nil)
}
