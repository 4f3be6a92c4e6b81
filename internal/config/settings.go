package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"godo/internal/notify"
)

// LoadSettings reads notification settings from the YAML settings file,
// layered over the defaults. A missing file yields the defaults.
func (c *Config) LoadSettings() (notify.Settings, error) {
	settings := notify.DefaultSettings()

	data, err := os.ReadFile(c.SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return notify.DefaultSettings(), fmt.Errorf("parse settings: %w", err)
	}
	if settings.ReminderLeadMinutes < 0 {
		settings.ReminderLeadMinutes = 0
	}
	return settings, nil
}

// SaveSettings writes notification settings to the YAML settings file.
func (c *Config) SaveSettings(settings notify.Settings) error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(c.SettingsPath(), data, 0600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
