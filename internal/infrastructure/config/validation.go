package config

import (
	"fmt"
	"math"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateDevice(config)...)
	validationErrors = append(validationErrors, validateADB(config)...)
	validationErrors = append(validationErrors, validateOverlay(config)...)
	validationErrors = append(validationErrors, validateKeymaps(config)...)
	validationErrors = append(validationErrors, validateTerminal(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateDevice(config *Config) []string {
	var validationErrors []string
	if config.Device.NativeWidth <= 0 || config.Device.NativeHeight <= 0 {
		validationErrors = append(validationErrors, "device.native_width and device.native_height must be positive")
	}
	ratio := config.Device.AspectRatio
	if ratio < 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		validationErrors = append(validationErrors, "device.aspect_ratio must be 0 (derived) or a positive number")
	}
	return validationErrors
}

func validateADB(config *Config) []string {
	var validationErrors []string
	if strings.TrimSpace(config.ADB.Path) == "" {
		validationErrors = append(validationErrors, "adb.path must not be empty")
	}
	if config.ADB.HoldTimeMs <= 0 {
		validationErrors = append(validationErrors, "adb.hold_time_ms must be positive")
	}
	if config.ADB.WriteTimeoutMs <= 0 {
		validationErrors = append(validationErrors, "adb.write_timeout_ms must be positive")
	}
	if config.ADB.KeyboardPollIntervalMs < 100 {
		validationErrors = append(validationErrors, "adb.keyboard_poll_interval_ms must be at least 100")
	}
	switch config.ADB.KeyboardSource {
	case KeyboardSourceDumpsys, KeyboardSourceLogcat, KeyboardSourceOff:
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"adb.keyboard_source must be one of dumpsys, logcat, off (got %q)", config.ADB.KeyboardSource))
	}
	return validationErrors
}

func validateOverlay(config *Config) []string {
	var validationErrors []string
	o := config.Overlay
	if o.ClickThresholdPx <= 0 {
		validationErrors = append(validationErrors, "overlay.click_threshold_px must be positive")
	}
	if o.MinSidePx <= 0 {
		validationErrors = append(validationErrors, "overlay.min_side_px must be positive")
	}
	if o.DefaultDiameterPx < o.MinSidePx {
		validationErrors = append(validationErrors, "overlay.default_diameter_px must not be smaller than overlay.min_side_px")
	}
	if o.DeleteRadiusPx <= 0 {
		validationErrors = append(validationErrors, "overlay.delete_radius_px must be positive")
	}
	if o.GridSizePx < 0 {
		validationErrors = append(validationErrors, "overlay.grid_size_px must be non-negative (0 disables the grid)")
	}
	return validationErrors
}

func validateKeymaps(config *Config) []string {
	switch config.Keymaps.Backend {
	case KeymapsBackendJSON, KeymapsBackendSQLite:
		return nil
	default:
		return []string{fmt.Sprintf("keymaps.backend must be json or sqlite (got %q)", config.Keymaps.Backend)}
	}
}

func validateTerminal(config *Config) []string {
	if config.Terminal.CellWidthPx <= 0 || config.Terminal.CellHeightPx <= 0 {
		return []string{"terminal.cell_width_px and terminal.cell_height_px must be positive"}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	validLevels := []string{"trace", "debug", "info", "warn", "error", "disabled", "off"}
	if !containsString(validLevels, strings.ToLower(config.Logging.Level)) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of %s (got %q)", strings.Join(validLevels, ", "), config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be console or json (got %q)", config.Logging.Format))
	}
	if config.Logging.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_age must be non-negative")
	}
	return validationErrors
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
