// Package config provides focusd's TOML configuration: timing knobs for the
// coordinator, the focus-memory bound, application exclusions, and hotkeys.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mj1618/focusd/internal/platform"
	"github.com/pelletier/go-toml/v2"
)

// Config is the root of the focusd configuration file.
type Config struct {
	Timing  TimingConfig  `toml:"timing"`
	Focus   FocusConfig   `toml:"focus"`
	Hotkeys HotkeysConfig `toml:"hotkeys"`
	Log     LogConfig     `toml:"log"`
}

// TimingConfig holds the coordinator's timing knobs, in milliseconds.
type TimingConfig struct {
	DebounceMs      int `toml:"debounce_ms"`        // Quiet period before a screen change triggers focus (default: 100)
	ClickCooldownMs int `toml:"click_cooldown_ms"`  // Ignore screen changes this soon after a click (default: 400)
	DragSettleMs    int `toml:"drag_settle_ms"`     // Delay before focusing the drop target after a drag (default: 250)
	ButtonUpDelayMs int `toml:"button_up_delay_ms"` // Delay after button-up before drag-end is decided (default: 100)
	PollIntervalMs  int `toml:"poll_interval_ms"`   // Pointer poll fallback interval (default: 2000)
}

// FocusConfig holds focus-resolution settings.
type FocusConfig struct {
	MemoryCapacity int      `toml:"memory_capacity"` // Max remembered windows, one per display (default: 5)
	ExcludedApps   []string `toml:"excluded_apps"`   // Application names never auto-focused
	Alerts         *bool    `toml:"alerts"`          // Show on-screen alerts for focus decisions (default: true)
}

// HotkeysConfig binds the four control hotkeys.
type HotkeysConfig struct {
	Toggle      string `toml:"toggle"`       // Enable/disable the coordinator
	Reload      string `toml:"reload"`       // Tear down and re-initialize
	Debug       string `toml:"debug"`        // Dump coordinator state
	ClearMemory string `toml:"clear_memory"` // Clear focus memory
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error (default: info)
}

// Default returns the default configuration.
func Default() *Config {
	alerts := true
	return &Config{
		Timing: TimingConfig{
			DebounceMs:      100,
			ClickCooldownMs: 400,
			DragSettleMs:    250,
			ButtonUpDelayMs: 100,
			PollIntervalMs:  2000,
		},
		Focus: FocusConfig{
			MemoryCapacity: 5,
			ExcludedApps: []string{
				"Spotlight",
				"Dock",
				"Notification Center",
				"Control Center",
				"Window Server",
			},
			Alerts: &alerts,
		},
		Hotkeys: HotkeysConfig{
			Toggle:      "ctrl+alt+cmd+f",
			Reload:      "ctrl+alt+cmd+r",
			Debug:       "ctrl+alt+cmd+d",
			ClearMemory: "ctrl+alt+cmd+x",
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns the default config file location under XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "focusd", "config.toml")
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist. Values absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as TOML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate checks value ranges and hotkey syntax.
func (c *Config) Validate() error {
	for name, ms := range map[string]int{
		"debounce_ms":        c.Timing.DebounceMs,
		"click_cooldown_ms":  c.Timing.ClickCooldownMs,
		"drag_settle_ms":     c.Timing.DragSettleMs,
		"button_up_delay_ms": c.Timing.ButtonUpDelayMs,
		"poll_interval_ms":   c.Timing.PollIntervalMs,
	} {
		if ms <= 0 {
			return fmt.Errorf("timing.%s must be positive, got %d", name, ms)
		}
	}
	if c.Focus.MemoryCapacity < 1 {
		return fmt.Errorf("focus.memory_capacity must be at least 1, got %d", c.Focus.MemoryCapacity)
	}
	for name, combo := range map[string]string{
		"toggle":       c.Hotkeys.Toggle,
		"reload":       c.Hotkeys.Reload,
		"debug":        c.Hotkeys.Debug,
		"clear_memory": c.Hotkeys.ClearMemory,
	} {
		if combo == "" {
			continue
		}
		if _, err := platform.ParseHotkey(combo); err != nil {
			return fmt.Errorf("hotkeys.%s: %w", name, err)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error, got %q", c.Log.Level)
	}
	return nil
}

// AlertsEnabled reports whether on-screen alerts are enabled (default true).
func (c *Config) AlertsEnabled() bool {
	return c.Focus.Alerts == nil || *c.Focus.Alerts
}

// Debounce returns the screen-change debounce duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Timing.DebounceMs) * time.Millisecond
}

// ClickCooldown returns the post-click suppression window.
func (c *Config) ClickCooldown() time.Duration {
	return time.Duration(c.Timing.ClickCooldownMs) * time.Millisecond
}

// DragSettle returns the post-drag settle delay before focusing the drop target.
func (c *Config) DragSettle() time.Duration {
	return time.Duration(c.Timing.DragSettleMs) * time.Millisecond
}

// ButtonUpDelay returns the delay between button-up and drag-end handling.
func (c *Config) ButtonUpDelay() time.Duration {
	return time.Duration(c.Timing.ButtonUpDelayMs) * time.Millisecond
}

// PollInterval returns the pointer poll fallback interval.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Timing.PollIntervalMs) * time.Millisecond
}
