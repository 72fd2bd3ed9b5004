package tui

import (
	"time"

	charmLog "github.com/charmbracelet/log"
)

// KeyConfig overrides single-key bindings.
type KeyConfig struct {
	AddTask     string
	ToggleTask  string
	DeleteTask  string
	NextSection string
	ToggleTheme string
	YankText    string
}

// RuntimeConfig carries the persisted settings the model renders with.
type RuntimeConfig struct {
	// RemoveDelay is the cosmetic pause between marking a task for removal
	// and committing it. Zero commits immediately.
	RemoveDelay time.Duration
	ShowSummary bool
	Keys        KeyConfig
}

// DefaultRuntimeConfig returns the baseline runtime settings.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		RemoveDelay: 350 * time.Millisecond,
		ShowSummary: true,
	}
}

// Option configures the model.
type Option func(*Model)

// WithRuntimeConfig applies persisted runtime settings.
func WithRuntimeConfig(cfg RuntimeConfig) Option {
	return func(m *Model) {
		if cfg.RemoveDelay < 0 {
			cfg.RemoveDelay = 0
		}
		m.removeDelay = cfg.RemoveDelay
		m.showSummary = cfg.ShowSummary
		m.keys = newKeyMap(cfg.Keys)
	}
}

// WithLogger routes non-fatal view failures to a runtime logger.
func WithLogger(logger *charmLog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClipboardWriter replaces the system clipboard writer, keeping yank
// behavior testable off a real display.
func WithClipboardWriter(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.writeClipboard = write
		}
	}
}
