// Package files resolves hadbit's data directory and the files kept in it.
package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// HomeEnv overrides the data directory when set to a non-blank path.
	HomeEnv = "HADBIT_HOME"
	// DefaultDirName is the data directory under the user's home.
	DefaultDirName = ".hadbit"

	dirPermissions = 0o755

	databaseFile = "hadbit.db"
	configFile   = "config.yaml"
	settingsFile = "settings.yaml"
	logFile      = "hadbit.log"
)

// Manager knows where the database, config, settings and log of one hadbit
// installation live.
type Manager struct {
	basePath string
}

// NewManager roots a Manager at basePath. An empty basePath means HADBIT_HOME
// when it is set, else ~/.hadbit. A leading "~" is expanded either way.
func NewManager(basePath string) (*Manager, error) {
	if basePath == "" {
		basePath = strings.TrimSpace(os.Getenv(HomeEnv))
	}
	if basePath == "" {
		basePath = filepath.Join("~", DefaultDirName)
	}

	expanded, err := expandHome(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve data directory: %w", err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, fmt.Errorf("resolve data directory: %w", err)
	}
	return &Manager{basePath: abs}, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// BasePath returns the data directory.
func (m *Manager) BasePath() string {
	return m.basePath
}

// DatabasePath is the default SQLite database location.
func (m *Manager) DatabasePath() string {
	return filepath.Join(m.basePath, databaseFile)
}

// ConfigPath is the optional YAML config file.
func (m *Manager) ConfigPath() string {
	return filepath.Join(m.basePath, configFile)
}

// SettingsPath is the YAML file holding user preferences.
func (m *Manager) SettingsPath() string {
	return filepath.Join(m.basePath, settingsFile)
}

// LogPath is where the application log is written.
func (m *Manager) LogPath() string {
	return filepath.Join(m.basePath, logFile)
}

// EnsureBaseDir creates the data directory if needed and returns it.
func (m *Manager) EnsureBaseDir() (string, error) {
	if m == nil {
		return "", errors.New("files.Manager is nil")
	}
	if err := os.MkdirAll(m.basePath, dirPermissions); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return m.basePath, nil
}
