// Package config loads tapmap settings from TOML, environment variables and
// defaults through viper, and keeps them current while the file changes.
package config

import (
	"time"

	"github.com/bnema/tapmap/internal/domain/entity"
)

// File permission constants
const (
	dirPerm  = 0755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0644 // Standard file permissions (rw-r--r--)
)

// Config represents the complete configuration for tapmap.
type Config struct {
	Device   DeviceConfig   `mapstructure:"device" toml:"device"`
	ADB      ADBConfig      `mapstructure:"adb" toml:"adb"`
	Overlay  OverlayConfig  `mapstructure:"overlay" toml:"overlay"`
	Keymaps  KeymapsConfig  `mapstructure:"keymaps" toml:"keymaps"`
	Terminal TerminalConfig `mapstructure:"terminal" toml:"terminal"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging"`
}

// DeviceConfig describes the mirrored device surface.
type DeviceConfig struct {
	// NativeWidth and NativeHeight are the virtual display resolution taps are
	// expressed in.
	NativeWidth  int `mapstructure:"native_width" toml:"native_width"`
	NativeHeight int `mapstructure:"native_height" toml:"native_height"`
	// AspectRatio of the mirrored content. 0 derives it from the native size.
	AspectRatio float64 `mapstructure:"aspect_ratio" toml:"aspect_ratio"`
	// DisplayID targets `input -d`. Negative means unknown until detected.
	DisplayID int    `mapstructure:"display_id" toml:"display_id"`
	Serial    string `mapstructure:"serial" toml:"serial"`
}

// KeyboardSource selects how the soft keyboard state is observed.
type KeyboardSource string

const (
	KeyboardSourceDumpsys KeyboardSource = "dumpsys"
	KeyboardSourceLogcat  KeyboardSource = "logcat"
	KeyboardSourceOff     KeyboardSource = "off"
)

// ADBConfig holds the control channel settings.
type ADBConfig struct {
	Path                   string         `mapstructure:"path" toml:"path"`
	UsePTY                 bool           `mapstructure:"use_pty" toml:"use_pty"`
	HoldTimeMs             int            `mapstructure:"hold_time_ms" toml:"hold_time_ms"`
	WriteTimeoutMs         int            `mapstructure:"write_timeout_ms" toml:"write_timeout_ms"`
	KeyboardPollIntervalMs int            `mapstructure:"keyboard_poll_interval_ms" toml:"keyboard_poll_interval_ms"`
	KeyboardSource         KeyboardSource `mapstructure:"keyboard_source" toml:"keyboard_source"`
}

// OverlayConfig holds the edit-mode thresholds, all in pixels.
type OverlayConfig struct {
	ClickThresholdPx  float64 `mapstructure:"click_threshold_px" toml:"click_threshold_px"`
	DefaultDiameterPx float64 `mapstructure:"default_diameter_px" toml:"default_diameter_px"`
	MinSidePx         float64 `mapstructure:"min_side_px" toml:"min_side_px"`
	DeleteRadiusPx    float64 `mapstructure:"delete_radius_px" toml:"delete_radius_px"`
	GridSizePx        float64 `mapstructure:"grid_size_px" toml:"grid_size_px"`
}

// KeymapsBackend selects the keymap persistence implementation.
type KeymapsBackend string

const (
	KeymapsBackendJSON   KeymapsBackend = "json"
	KeymapsBackendSQLite KeymapsBackend = "sqlite"
)

// KeymapsConfig selects where keymaps are stored.
type KeymapsConfig struct {
	Backend  KeymapsBackend `mapstructure:"backend" toml:"backend"`
	File     string         `mapstructure:"file" toml:"file"`
	Database string         `mapstructure:"database" toml:"database"`
	Profile  string         `mapstructure:"profile" toml:"profile"`
}

// TerminalConfig maps terminal cells to overlay pixels for the headless driver.
type TerminalConfig struct {
	CellWidthPx  int `mapstructure:"cell_width_px" toml:"cell_width_px"`
	CellHeightPx int `mapstructure:"cell_height_px" toml:"cell_height_px"`
	// PreviewFile receives a PNG of the overlay after each repaint. Empty disables it.
	PreviewFile string `mapstructure:"preview_file" toml:"preview_file"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
	// MaxAge is the age in days after which `logs clear` removes session logs.
	MaxAge int `mapstructure:"max_age" toml:"max_age"`
}

// Native returns the configured native resolution.
func (d DeviceConfig) Native() entity.NativeSize {
	return entity.NativeSize{Width: d.NativeWidth, Height: d.NativeHeight}
}

// Ratio returns the aspect ratio used by the geometry resolver.
func (d DeviceConfig) Ratio() float64 {
	if d.AspectRatio > 0 {
		return d.AspectRatio
	}
	return d.Native().AspectRatio()
}

// KnownDisplayID returns the display id and whether one is configured.
func (d DeviceConfig) KnownDisplayID() (int, bool) {
	return d.DisplayID, d.DisplayID >= 0
}

// HoldTime returns the press-and-hold swipe duration.
func (a ADBConfig) HoldTime() time.Duration {
	return time.Duration(a.HoldTimeMs) * time.Millisecond
}

// WriteTimeout returns the bound on a single channel write.
func (a ADBConfig) WriteTimeout() time.Duration {
	return time.Duration(a.WriteTimeoutMs) * time.Millisecond
}

// KeyboardPollInterval returns the soft keyboard probe interval.
func (a ADBConfig) KeyboardPollInterval() time.Duration {
	return time.Duration(a.KeyboardPollIntervalMs) * time.Millisecond
}
