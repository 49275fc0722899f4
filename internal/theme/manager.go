package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/termreel/internal/logger"
)

// Manager holds loaded themes and the active one.
type Manager struct {
	themes      map[string]*Theme // lowercase name -> theme
	activeTheme *Theme
	mutex       sync.RWMutex
}

// NewManager creates a manager with the built-in themes and DevComfort Dark
// active.
func NewManager() *Manager {
	mgr := &Manager{
		themes: make(map[string]*Theme),
	}
	mgr.add(&DevComfortDark)
	mgr.add(&Mono)
	mgr.activeTheme = &DevComfortDark
	return mgr
}

// DefaultDir is where user themes are looked up.
func DefaultDir(appName string) string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		logger.Warnf("Could not find user config dir: %v", err)
		return ""
	}
	return filepath.Join(configDir, appName, "themes")
}

func (m *Manager) add(t *Theme) {
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok {
		logger.Warnf("Theme '%s' overrides existing theme '%s'", t.Name, existing.Name)
	}
	m.themes[key] = t
}

// LoadFile loads a TOML theme and registers it. The loaded theme is returned.
func (m *Manager) LoadFile(path string) (*Theme, error) {
	t, err := LoadThemeFromFile(path)
	if err != nil {
		return nil, err
	}
	m.mutex.Lock()
	m.add(t)
	m.mutex.Unlock()
	return t, nil
}

// LoadDir registers every .toml theme in dir. A missing dir is not an error.
func (m *Manager) LoadDir(dir string) error {
	if dir == "" {
		return nil
	}
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		logger.Debugf("Theme directory '%s' does not exist", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", dir, err)
	}

	loaded := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		path := filepath.Join(dir, file.Name())
		if _, err := m.LoadFile(path); err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", path, err)
			continue
		}
		loaded++
	}
	logger.Infof("Loaded %d custom themes from %s", loaded, dir)
	return nil
}

// Resolve activates the theme to use: file when set, else name when set.
// Failures are logged and leave the current theme active.
func (m *Manager) Resolve(name, file string) *Theme {
	if file != "" {
		t, err := m.LoadFile(file)
		if err != nil {
			logger.Errorf("Theme file: %v", err)
		} else {
			name = t.Name
		}
	}
	if name != "" {
		if err := m.SetTheme(name); err != nil {
			logger.Warnf("%v, keeping %s", err, m.Current().Name)
		}
	}
	return m.Current()
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.activeTheme == nil {
		return &Theme{Name: "Failsafe", Styles: map[string]tcell.Style{"Default": tcell.StyleDefault}}
	}
	return m.activeTheme
}

// SetTheme activates a theme by name, case-insensitively.
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	theme, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	if m.activeTheme != theme {
		m.activeTheme = theme
		logger.Infof("Active theme set to: %s", theme.Name)
	}
	return nil
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, theme := range m.themes {
		names = append(names, theme.Name)
	}
	sort.Strings(names)
	return names
}

// GetTheme returns a theme by name, case-insensitively.
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	theme, ok := m.themes[strings.ToLower(name)]
	return theme, ok
}
