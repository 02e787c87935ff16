package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	config "wfm-api/configs"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})

	SetupLogging("debug", "production")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	SetupLogging("verbose", "development")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)
}

func TestLoadProfilesDefaultOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	data := "default: standard\nprofiles:\n  standard:\n    peak_buffer_ratio: 0.1\n  night:\n    peak_buffer_ratio: 0.05\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	profiles, err := LoadProfiles(&config.Config{StaffingProfilesPath: path, DefaultProfile: "night"})
	require.NoError(t, err)
	assert.Equal(t, "night", profiles.Default)

	// 存在しない既定プロファイル名は無視する
	profiles, err = LoadProfiles(&config.Config{StaffingProfilesPath: path, DefaultProfile: "unknown"})
	require.NoError(t, err)
	assert.Equal(t, "standard", profiles.Default)
}

func TestLoadProfilesMaxCallsOverride(t *testing.T) {
	t.Setenv("STAFFING_PROFILES_PATH", "../../configs/staffing_profiles.yaml")
	t.Setenv("MAX_CALLS_PER_AGENT", "20")

	profiles, err := LoadProfiles(config.LoadConfig())
	require.NoError(t, err)
	for _, name := range profiles.Names() {
		p, _ := profiles.Get(name)
		assert.Equal(t, 20, p.MaxCallsPerAgent, "profile %s", name)
	}

	// 未指定ならYAMLの値のまま
	t.Setenv("MAX_CALLS_PER_AGENT", "")
	profiles, err = LoadProfiles(config.LoadConfig())
	require.NoError(t, err)
	standard, ok := profiles.Get("standard")
	require.True(t, ok)
	assert.Equal(t, 40, standard.MaxCallsPerAgent)
}

func TestLoadProfilesInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles: ["), 0o644))

	_, err := LoadProfiles(&config.Config{StaffingProfilesPath: path})
	assert.Error(t, err)
}

func TestForecastOptions(t *testing.T) {
	opts := ForecastOptions(&config.Config{FallbackCallsPerShift: 80})

	assert.Equal(t, 80.0, opts.FallbackCallsPerShift)
	assert.Equal(t, 5, opts.AROrder)
	assert.True(t, opts.SplitShifts)
}
