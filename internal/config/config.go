package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Button profiles supported by the command interpreter.
const (
	// ProfileSingle treats every controller button as the primary button.
	ProfileSingle = "single"
	// ProfileDual maps button 1 to lock and button 2 to unlock.
	ProfileDual = "dual"
)

// Config represents the complete configuration for the key fob bridge.
type Config struct {
	Device      DeviceConfig      `yaml:"device"`
	Profile     string            `yaml:"profile"`
	Pins        PinsConfig        `yaml:"pins"`
	Timing      TimingConfig      `yaml:"timing"`
	Advertising AdvertisingConfig `yaml:"advertising"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// DeviceConfig holds the BLE identity of the bridge.
type DeviceConfig struct {
	Name       string `yaml:"name"`
	TxPowerDbm int    `yaml:"txPowerDbm"`
}

// PinsConfig names the GPIO lines driving the optocouplers and the
// status indicator. Names are resolved through periph's pin registry.
type PinsConfig struct {
	Lock      string `yaml:"lock"`
	Unlock    string `yaml:"unlock"`
	StatusLed string `yaml:"statusLed"`
}

// TimingConfig holds all timing-related settings.
type TimingConfig struct {
	PulseHoldMs       int `yaml:"pulseHoldMs"`       // optocoupler hold per press
	StartupBlinkCount int `yaml:"startupBlinkCount"` // status LED blinks at boot
	StartupBlinkMs    int `yaml:"startupBlinkMs"`    // on/off interval per blink
}

// PulseHold returns the pulse hold duration.
func (t TimingConfig) PulseHold() time.Duration {
	return time.Duration(t.PulseHoldMs) * time.Millisecond
}

// StartupBlinkInterval returns the on/off interval for the boot blink pattern.
func (t TimingConfig) StartupBlinkInterval() time.Duration {
	return time.Duration(t.StartupBlinkMs) * time.Millisecond
}

// AdvertisingConfig holds BLE advertising settings.
type AdvertisingConfig struct {
	IntervalMs          int  `yaml:"intervalMs"`
	RestartOnDisconnect bool `yaml:"restartOnDisconnect"`
}

// Interval returns the advertising interval.
func (a AdvertisingConfig) Interval() time.Duration {
	return time.Duration(a.IntervalMs) * time.Millisecond
}

// LoggingConfig holds diagnostic and audit log settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Dir        string `yaml:"dir"`
	MaxSizeMb  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	cfg := Default()

	// Load from default config file if present
	if err := loadFromFile(cfg, "config/default.yaml"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config/default.yaml: %w", err)
	}

	// Load from config file if KFC_CONFIG is set
	if path := os.Getenv("KFC_CONFIG"); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	// Override with environment variables
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Default returns the compiled-in configuration: lock and unlock contacts
// on GPIO20/GPIO22, status LED on GPIO15, a 300 ms pulse hold, three
// 200 ms startup blinks, and fast advertising.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Name:       "KeyFob",
			TxPowerDbm: 4,
		},
		Profile: ProfileDual,
		Pins: PinsConfig{
			Lock:      "GPIO20",
			Unlock:    "GPIO22",
			StatusLed: "GPIO15",
		},
		Timing: TimingConfig{
			PulseHoldMs:       300,
			StartupBlinkCount: 3,
			StartupBlinkMs:    200,
		},
		Advertising: AdvertisingConfig{
			IntervalMs:          20,
			RestartOnDisconnect: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Dir:        "logs",
			MaxSizeMb:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *Config, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides applies KFC_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if name := os.Getenv("KFC_DEVICE_NAME"); name != "" {
		cfg.Device.Name = name
	}

	if profile := os.Getenv("KFC_PROFILE"); profile != "" {
		cfg.Profile = profile
	}

	if level := os.Getenv("KFC_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}

	if pin := os.Getenv("KFC_PIN_LOCK"); pin != "" {
		cfg.Pins.Lock = pin
	}

	if pin := os.Getenv("KFC_PIN_UNLOCK"); pin != "" {
		cfg.Pins.Unlock = pin
	}

	if pin := os.Getenv("KFC_PIN_STATUS_LED"); pin != "" {
		cfg.Pins.StatusLed = pin
	}

	if hold := os.Getenv("KFC_PULSE_HOLD_MS"); hold != "" {
		if ms, err := strconv.Atoi(hold); err == nil {
			cfg.Timing.PulseHoldMs = ms
		}
	}
}

// GetEnvVar returns the value of an environment variable with a default.
func GetEnvVar(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
