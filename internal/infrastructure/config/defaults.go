package config

// Default configuration constants
const (
	// Device defaults, matching the scrcpy virtual display
	defaultNativeWidth  = 1280
	defaultNativeHeight = 720
	defaultDisplayID    = -1

	// ADB defaults
	defaultADBPath                = "adb"
	defaultHoldTimeMs             = 100
	defaultWriteTimeoutMs         = 250
	defaultKeyboardPollIntervalMs = 1000

	// Overlay defaults (pixels)
	defaultClickThresholdPx  = 5.0
	defaultDefaultDiameterPx = 100.0
	defaultMinSidePx         = 10.0
	defaultDeleteRadiusPx    = 12.5
	defaultGridSizePx        = 50.0

	// Keymap storage defaults
	defaultKeymapsFile    = "keymaps.json"
	defaultKeymapsProfile = "default"

	// Terminal defaults, a common monospace cell size
	defaultCellWidthPx  = 10
	defaultCellHeightPx = 20
)

// DefaultConfig returns the default configuration. File paths are left empty
// and resolved against the XDG directories on load.
func DefaultConfig() *Config {
	return &Config{
		Device: DeviceConfig{
			NativeWidth:  defaultNativeWidth,
			NativeHeight: defaultNativeHeight,
			DisplayID:    defaultDisplayID,
		},
		ADB: ADBConfig{
			Path:                   defaultADBPath,
			HoldTimeMs:             defaultHoldTimeMs,
			WriteTimeoutMs:         defaultWriteTimeoutMs,
			KeyboardPollIntervalMs: defaultKeyboardPollIntervalMs,
			KeyboardSource:         KeyboardSourceDumpsys,
		},
		Overlay: OverlayConfig{
			ClickThresholdPx:  defaultClickThresholdPx,
			DefaultDiameterPx: defaultDefaultDiameterPx,
			MinSidePx:         defaultMinSidePx,
			DeleteRadiusPx:    defaultDeleteRadiusPx,
			GridSizePx:        defaultGridSizePx,
		},
		Keymaps: KeymapsConfig{
			Backend: KeymapsBackendJSON,
			Profile: defaultKeymapsProfile,
		},
		Terminal: TerminalConfig{
			CellWidthPx:  defaultCellWidthPx,
			CellHeightPx: defaultCellHeightPx,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			MaxAge: 7,
		},
	}
}
