package command

import (
	"regexp"
	"sort"
	"sync"

	"github.com/Kargones/voiceskill/internal/pkg/apperrors"
)

var (
	// registry хранит зарегистрированные обработчики по имени команды.
	registry = make(map[string]Handler)
	mu       sync.RWMutex
	// commandNamePattern — строгий kebab-case: без завершающего и двойного дефиса.
	commandNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
)

// Register регистрирует обработчик команды в глобальном реестре.
//
// Паникует если обработчик nil, имя пустое или не в kebab-case,
// либо команда с таким именем уже зарегистрирована.
func Register(h Handler) {
	if h == nil {
		panic("command: nil handler")
	}
	name := h.Name()
	if name == "" {
		panic("command: empty handler name")
	}
	if !commandNamePattern.MatchString(name) {
		panic("command: invalid handler name format (must be kebab-case): " + name)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[name]; exists {
		panic("command: duplicate handler registration for " + name)
	}
	registry[name] = h
}

// RegisterWithAlias регистрирует обработчик под его именем и, если deprecated
// не пустой, под устаревшим именем через DeprecatedBridge.
//
// Паникует при deprecated == h.Name() и при повторной регистрации алиаса.
//
//	func init() {
//	    command.RegisterWithAlias(&IntentSchemaHandler{}, constants.ActSchema)
//	}
func RegisterWithAlias(h Handler, deprecated string) {
	if h == nil {
		panic("command: nil handler")
	}
	Register(h)

	if deprecated == "" {
		return
	}
	if deprecated == h.Name() {
		panic("command: deprecated name cannot be same as handler name: " + deprecated)
	}

	// Алиас не проверяется на kebab-case: устаревшие имена могут иметь любой вид.
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[deprecated]; exists {
		panic("command: duplicate handler registration for " + deprecated)
	}
	registry[deprecated] = &DeprecatedBridge{
		actual:     h,
		deprecated: deprecated,
		newName:    h.Name(),
	}
}

// Get возвращает обработчик команды по имени.
func Get(name string) (Handler, bool) {
	mu.RLock()
	defer mu.RUnlock()
	h, ok := registry[name]
	return h, ok
}

// Resolve возвращает обработчик команды или ошибку COMMAND.NOT_FOUND.
func Resolve(name string) (Handler, error) {
	if h, ok := Get(name); ok {
		return h, nil
	}
	return nil, apperrors.NewAppError(apperrors.ErrCommandNotFound, "неизвестная команда: "+name, nil)
}

// All возвращает копию всех зарегистрированных обработчиков.
func All() map[string]Handler {
	mu.RLock()
	defer mu.RUnlock()
	result := make(map[string]Handler, len(registry))
	for k, v := range registry {
		result[k] = v
	}
	return result
}

// Names возвращает отсортированный список имён всех зарегистрированных команд.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Info описывает команду вместе с её устаревшим алиасом.
type Info struct {
	// Name — основное имя команды.
	Name string
	// DeprecatedAlias — устаревший алиас или пустая строка.
	DeprecatedAlias string
}

// ListAllWithAliases возвращает все команды, кроме мостов устаревших имён;
// алиасы указываются в DeprecatedAlias основной команды.
// Результат отсортирован по имени.
func ListAllWithAliases() []Info {
	mu.RLock()
	defer mu.RUnlock()

	aliasMap := make(map[string]string)
	for _, h := range registry {
		if bridge, ok := h.(*DeprecatedBridge); ok {
			aliasMap[bridge.newName] = bridge.deprecated
		}
	}

	result := make([]Info, 0, len(registry)-len(aliasMap))
	for name, h := range registry {
		if _, isBridge := h.(*DeprecatedBridge); isBridge {
			continue
		}
		result = append(result, Info{Name: name, DeprecatedAlias: aliasMap[name]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// clearRegistry очищает реестр. Используется только в тестах.
func clearRegistry() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Handler)
}
