package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godo/internal/notify"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := New(t.TempDir())
	require.NoError(t, err)
	return cfg
}

func TestLoadSettings_MissingFileYieldsDefaults(t *testing.T) {
	cfg := testConfig(t)

	settings, err := cfg.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, notify.DefaultSettings(), settings)
}

func TestSettings_SaveLoadRoundTrip(t *testing.T) {
	cfg := testConfig(t)

	settings := notify.DefaultSettings()
	settings.ReminderLeadMinutes = 15
	settings.QuietHoursEnabled = true
	settings.DailySummaryTime = notify.ClockTime{Hour: 7, Minute: 30}

	require.NoError(t, cfg.SaveSettings(settings))

	loaded, err := cfg.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestLoadSettings_PartialFileLayersOverDefaults(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.SettingsPath(), []byte("reminder_lead_minutes: 45\n"), 0600))

	settings, err := cfg.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, 45, settings.ReminderLeadMinutes)
	// Untouched fields keep their defaults.
	assert.True(t, settings.DailySummaryEnabled)
	assert.Equal(t, notify.ClockTime{Hour: 20}, settings.WeeklyReviewTime)
}

func TestLoadSettings_NegativeLeadClamped(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.SettingsPath(), []byte("reminder_lead_minutes: -10\n"), 0600))

	settings, err := cfg.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, 0, settings.ReminderLeadMinutes)
}

func TestLoadSettings_MalformedFileErrorsWithDefaults(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.SettingsPath(), []byte("{{not yaml"), 0600))

	settings, err := cfg.LoadSettings()
	require.Error(t, err)
	assert.Equal(t, notify.DefaultSettings(), settings)
}

func TestConfigPaths(t *testing.T) {
	dir := t.TempDir()
	cfg, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "tasks.json"), cfg.TasksPath())
	assert.Equal(t, filepath.Join(dir, "triggers.db"), cfg.TriggersPath())
	assert.Equal(t, filepath.Join(dir, "settings.yaml"), cfg.SettingsPath())
}
