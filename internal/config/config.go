package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the persisted application settings.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	UI       UIConfig       `toml:"ui"`
	Logging  LoggingConfig  `toml:"logging"`
	Keys     KeyConfig      `toml:"keys"`
}

// DatabaseConfig locates the sqlite key-value store.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// RemoveDelayMS is the cosmetic pause between marking a task for removal
	// and committing it. Zero commits immediately.
	RemoveDelayMS int    `toml:"remove_delay_ms"`
	ShowSummary   bool   `toml:"show_summary"`
	DefaultTheme  string `toml:"default_theme"`
}

// LoggingConfig controls the runtime log sinks.
type LoggingConfig struct {
	Level   string           `toml:"level"`
	DevFile DevFileLogConfig `toml:"dev_file"`
}

// DevFileLogConfig controls the optional dev-mode file sink.
type DevFileLogConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// KeyConfig overrides single-key bindings in the TUI.
type KeyConfig struct {
	AddTask     string `toml:"add_task"`
	ToggleTask  string `toml:"toggle_task"`
	DeleteTask  string `toml:"delete_task"`
	NextSection string `toml:"next_section"`
	ToggleTheme string `toml:"toggle_theme"`
	YankText    string `toml:"yank_text"`
}

// validLogLevels lists the accepted logging.level values.
var validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}

// Default returns the baseline configuration for a database path.
func Default(dbPath string) Config {
	return Config{
		Database: DatabaseConfig{
			Path: dbPath,
		},
		UI: UIConfig{
			RemoveDelayMS: 350,
			ShowSummary:   true,
			DefaultTheme:  "light",
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileLogConfig{
				Enabled: true,
			},
		},
		Keys: KeyConfig{
			AddTask:     "n",
			ToggleTask:  "space",
			DeleteTask:  "d",
			NextSection: "tab",
			ToggleTheme: "T",
			YankText:    "y",
		},
	}
}

// Load reads a TOML config file over the provided defaults. A missing or empty
// file yields the defaults unchanged.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}

	if c.UI.RemoveDelayMS < 0 {
		return fmt.Errorf("ui.remove_delay_ms must be >= 0, got %d", c.UI.RemoveDelayMS)
	}
	switch strings.TrimSpace(strings.ToLower(c.UI.DefaultTheme)) {
	case "", "light", "dark":
	default:
		return fmt.Errorf("invalid ui.default_theme: %q", c.UI.DefaultTheme)
	}

	level := strings.TrimSpace(strings.ToLower(c.Logging.Level))
	if level != "" && !slices.Contains(validLogLevels, level) {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	return nil
}

// RemoveDelay returns the configured removal delay as a duration.
func (c Config) RemoveDelay() time.Duration {
	return time.Duration(c.UI.RemoveDelayMS) * time.Millisecond
}

// EnsureConfigDir creates the directory holding a config path.
func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
