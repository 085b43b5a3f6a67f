package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-dashtyar/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"RouteFeed", config.RouteFeed},
		{"RouteMonth", config.RouteMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Dashtyar/"), "UserAgent must start with AppName/")
}

func TestTimeouts(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.ShutdownTimeout, 0*time.Second)
	assert.Greater(t, config.ServerWriteTimeout, config.ServerReadTimeout)
	assert.Equal(t, 7, config.GridColumns)
}

func TestLoadSettings_FirstRunCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", config.SettingsFileName)

	s, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPort, s.Port)
	assert.Equal(t, config.CalendarJalali, s.Calendar)
	assert.Equal(t, filepath.Join(filepath.Dir(path), config.NotesFileName), s.NotesPath)

	info, err := os.Stat(path)
	require.NoError(t, err, "defaults must be persisted on first run")
	if os.PathSeparator == '/' {
		assert.Equal(t, config.FilePermUserRW, info.Mode().Perm())
	}

	again, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, s, again)
}

func TestLoadSettings_PartialFileIsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("calendar: gregorian\nlanguage: en\n"), config.FilePermUserRW))

	s, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, config.CalendarGregorian, s.Calendar)
	assert.Equal(t, "en", s.Language)
	assert.Equal(t, config.DefaultPort, s.Port)
	assert.Equal(t, config.DefaultRefreshCron, s.Refresh)
}

func TestLoadSettings_CalendarAliases(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"Jalali", config.CalendarJalali},
		{"shamsi", config.CalendarJalali},
		{"Persian", config.CalendarJalali},
		{"GREGORIAN", config.CalendarGregorian},
		{"miladi", config.CalendarGregorian},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), config.SettingsFileName)
			require.NoError(t, os.WriteFile(path, []byte("calendar: "+tt.value+"\n"), config.FilePermUserRW))

			s, err := config.LoadSettings(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Calendar)
		})
	}
}

func TestLoadSettings_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "port: [", config.ErrSettingsParse},
		{"bad calendar", "calendar: hebrew\n", config.ErrSettingsCalendar},
		{"bad language", "language: de\n", config.ErrSettingsLanguage},
		{"bad cron", "refresh: every now and then\n", config.ErrSettingsCron},
		{"bad port", "port: \"99999\"\n", config.ErrPortRange},
		{"port not a number", "port: abc\n", config.ErrPortNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), config.SettingsFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), config.FilePermUserRW))

			_, err := config.LoadSettings(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettings_AcceptsRegionalLanguageTag(t *testing.T) {
	s := config.DefaultSettings()
	s.Language = "fa-IR"
	assert.NoError(t, s.Validate())
}

func TestLoadSettings_EmptyPath(t *testing.T) {
	_, err := config.LoadSettings("")
	assert.EqualError(t, err, config.ErrSettingsPath)
}
