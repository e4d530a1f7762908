package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	// explicit is set when the config file was given on the command line.
	explicit string
}

// NewManager creates a manager reading config.toml from the XDG config
// directory or the current directory.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Configure Viper for TOML as default format
	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	return newManager(v, "")
}

// NewManagerForFile creates a manager bound to one config file. The file is
// created with defaults on Load when missing.
func NewManagerForFile(path string) (*Manager, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	return newManager(v, path)
}

func newManager(v *viper.Viper, explicit string) (*Manager, error) {
	// Environment variables use the TAPMAP_ prefix, e.g. TAPMAP_ADB_PATH or
	// TAPMAP_DEVICE_DISPLAY_ID.
	v.SetEnvPrefix("TAPMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short names shared with logging.NewFromEnv
	if err := v.BindEnv("logging.level", "TAPMAP_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind TAPMAP_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "TAPMAP_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind TAPMAP_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
		explicit:  explicit,
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.explicit == "" {
		if err := EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to ensure directories: %w", err)
		}
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if m.explicit != "" {
		if _, err := os.Stat(m.explicit); errors.Is(err, os.ErrNotExist) {
			if err := m.createDefaultConfig(m.explicit); err != nil {
				return fmt.Errorf("failed to create default config at %s: %w", m.explicit, err)
			}
		}
	}

	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		configFile := m.viper.ConfigFileUsed()
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}
	if err := m.createDefaultConfig(configFile); err != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			configFile,
			err,
		)
	}
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read newly created config file: %w", err)
	}
	return nil
}

// decode unmarshals, normalizes and validates the current viper state.
func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := resolvePaths(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func resolvePaths(config *Config) error {
	if config.Keymaps.File == "" {
		path, err := GetKeymapsFile()
		if err != nil {
			return fmt.Errorf("failed to get keymaps file path: %w", err)
		}
		config.Keymaps.File = path
	}
	if config.Keymaps.Database == "" {
		path, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Keymaps.Database = path
	}
	return nil
}

func normalizeConfig(config *Config) {
	switch KeyboardSource(strings.ToLower(string(config.ADB.KeyboardSource))) {
	case "", KeyboardSourceDumpsys:
		config.ADB.KeyboardSource = KeyboardSourceDumpsys
	case KeyboardSourceLogcat:
		config.ADB.KeyboardSource = KeyboardSourceLogcat
	case KeyboardSourceOff:
		config.ADB.KeyboardSource = KeyboardSourceOff
	}

	switch KeymapsBackend(strings.ToLower(string(config.Keymaps.Backend))) {
	case "", KeymapsBackendJSON:
		config.Keymaps.Backend = KeymapsBackendJSON
	case KeymapsBackendSQLite:
		config.Keymaps.Backend = KeymapsBackendSQLite
	}

	config.Keymaps.Profile = strings.TrimSpace(config.Keymaps.Profile)
	if config.Keymaps.Profile == "" {
		config.Keymaps.Profile = defaultKeymapsProfile
	}
	config.Device.Serial = strings.TrimSpace(config.Device.Serial)
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path of the config file in use.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig writes the defaults to path with stable ordering.
func (m *Manager) createDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err
	}
	return WriteConfigOrdered(DefaultConfig(), path)
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("device.native_width", defaults.Device.NativeWidth)
	m.viper.SetDefault("device.native_height", defaults.Device.NativeHeight)
	m.viper.SetDefault("device.aspect_ratio", defaults.Device.AspectRatio)
	m.viper.SetDefault("device.display_id", defaults.Device.DisplayID)
	m.viper.SetDefault("device.serial", defaults.Device.Serial)

	m.viper.SetDefault("adb.path", defaults.ADB.Path)
	m.viper.SetDefault("adb.use_pty", defaults.ADB.UsePTY)
	m.viper.SetDefault("adb.hold_time_ms", defaults.ADB.HoldTimeMs)
	m.viper.SetDefault("adb.write_timeout_ms", defaults.ADB.WriteTimeoutMs)
	m.viper.SetDefault("adb.keyboard_poll_interval_ms", defaults.ADB.KeyboardPollIntervalMs)
	m.viper.SetDefault("adb.keyboard_source", string(defaults.ADB.KeyboardSource))

	m.viper.SetDefault("overlay.click_threshold_px", defaults.Overlay.ClickThresholdPx)
	m.viper.SetDefault("overlay.default_diameter_px", defaults.Overlay.DefaultDiameterPx)
	m.viper.SetDefault("overlay.min_side_px", defaults.Overlay.MinSidePx)
	m.viper.SetDefault("overlay.delete_radius_px", defaults.Overlay.DeleteRadiusPx)
	m.viper.SetDefault("overlay.grid_size_px", defaults.Overlay.GridSizePx)

	m.viper.SetDefault("keymaps.backend", string(defaults.Keymaps.Backend))
	m.viper.SetDefault("keymaps.file", defaults.Keymaps.File)
	m.viper.SetDefault("keymaps.database", defaults.Keymaps.Database)
	m.viper.SetDefault("keymaps.profile", defaults.Keymaps.Profile)

	m.viper.SetDefault("terminal.cell_width_px", defaults.Terminal.CellWidthPx)
	m.viper.SetDefault("terminal.cell_height_px", defaults.Terminal.CellHeightPx)
	m.viper.SetDefault("terminal.preview_file", defaults.Terminal.PreviewFile)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
}
