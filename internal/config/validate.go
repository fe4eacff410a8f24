package config

import (
	"fmt"
)

// Validate enforces configuration bounds before any hardware is touched.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validateProfile(cfg); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}

	if err := validatePins(cfg); err != nil {
		return fmt.Errorf("pin validation failed: %w", err)
	}

	if err := validateTiming(cfg); err != nil {
		return fmt.Errorf("timing validation failed: %w", err)
	}

	if err := validateRadio(cfg); err != nil {
		return fmt.Errorf("radio validation failed: %w", err)
	}

	if err := validateLogging(cfg); err != nil {
		return fmt.Errorf("logging validation failed: %w", err)
	}

	return nil
}

// validateProfile checks the button profile selection.
func validateProfile(cfg *Config) error {
	switch cfg.Profile {
	case ProfileSingle, ProfileDual:
		return nil
	default:
		return fmt.Errorf("invalid profile %q, must be %q or %q", cfg.Profile, ProfileSingle, ProfileDual)
	}
}

// validatePins checks that every configured pin is named and no two
// outputs share a line.
func validatePins(cfg *Config) error {
	if cfg.Pins.Lock == "" {
		return fmt.Errorf("lock pin must be named")
	}
	if cfg.Profile == ProfileDual && cfg.Pins.Unlock == "" {
		return fmt.Errorf("unlock pin must be named in dual profile")
	}
	if cfg.Pins.StatusLed == "" {
		return fmt.Errorf("status LED pin must be named")
	}

	seen := map[string]string{}
	for name, pin := range map[string]string{
		"lock":      cfg.Pins.Lock,
		"unlock":    cfg.Pins.Unlock,
		"statusLed": cfg.Pins.StatusLed,
	} {
		if pin == "" {
			continue
		}
		if other, ok := seen[pin]; ok {
			return fmt.Errorf("pin %s assigned to both %s and %s", pin, other, name)
		}
		seen[pin] = name
	}

	return nil
}

// validateTiming checks pulse and blink timing bounds.
func validateTiming(cfg *Config) error {
	if cfg.Timing.PulseHoldMs < 50 || cfg.Timing.PulseHoldMs > 2000 {
		return fmt.Errorf("pulse hold %d ms is outside reasonable range [50, 2000]", cfg.Timing.PulseHoldMs)
	}

	if cfg.Timing.StartupBlinkCount < 0 || cfg.Timing.StartupBlinkCount > 10 {
		return fmt.Errorf("startup blink count %d is outside reasonable range [0, 10]", cfg.Timing.StartupBlinkCount)
	}

	if cfg.Timing.StartupBlinkCount > 0 && (cfg.Timing.StartupBlinkMs < 50 || cfg.Timing.StartupBlinkMs > 1000) {
		return fmt.Errorf("startup blink interval %d ms is outside reasonable range [50, 1000]", cfg.Timing.StartupBlinkMs)
	}

	return nil
}

// validateRadio checks BLE radio settings.
func validateRadio(cfg *Config) error {
	if cfg.Device.Name == "" {
		return fmt.Errorf("device name must not be empty")
	}

	if cfg.Device.TxPowerDbm < -40 || cfg.Device.TxPowerDbm > 8 {
		return fmt.Errorf("tx power %d dBm is outside supported range [-40, 8]", cfg.Device.TxPowerDbm)
	}

	if cfg.Advertising.IntervalMs < 20 || cfg.Advertising.IntervalMs > 10240 {
		return fmt.Errorf("advertising interval %d ms is outside BLE range [20, 10240]", cfg.Advertising.IntervalMs)
	}

	return nil
}

// validateLogging checks log level and rotation settings.
func validateLogging(cfg *Config) error {
	switch cfg.Logging.Level {
	case "error", "warn", "warning", "info", "debug":
	default:
		return fmt.Errorf("invalid log level %q, must be error, warn, info, or debug", cfg.Logging.Level)
	}

	if cfg.Logging.Dir == "" {
		return fmt.Errorf("log directory must not be empty")
	}

	if cfg.Logging.MaxSizeMb <= 0 {
		return fmt.Errorf("log max size %d MB must be positive", cfg.Logging.MaxSizeMb)
	}

	return nil
}
