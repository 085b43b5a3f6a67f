package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-dashtyar/internal/calendar"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Settings is the on-disk configuration shared by the window, the terminal
// view and the headless server.
type Settings struct {
	// Port is the localhost port of the HTTP server.
	Port string `yaml:"port"`

	// NotesPath points at the notes JSON file written by the notes editor.
	NotesPath string `yaml:"notes_path"`

	// Calendar is the system shown on first start: "gregorian" or "jalali".
	// The window remembers later toggles in its own preferences.
	Calendar string `yaml:"calendar"`

	// Language is the UI language (ISO 639-1).
	Language string `yaml:"language"`

	// Refresh is a cron schedule for re-reading the notes file.
	Refresh string `yaml:"refresh"`
}

// DefaultSettings returns the in-memory defaults. NotesPath is left empty and
// resolved next to the settings file by LoadSettings.
func DefaultSettings() *Settings {
	return &Settings{
		Port:     DefaultPort,
		Calendar: DefaultCalendar,
		Language: DefaultLanguage,
		Refresh:  DefaultRefreshCron,
	}
}

// Normalize fills zero values with defaults so older or partial files still work.
func (s *Settings) Normalize() {
	d := DefaultSettings()
	if s.Port == "" {
		s.Port = d.Port
	}
	if s.Calendar == "" {
		s.Calendar = d.Calendar
	}
	// Aliases such as "Shamsi" are stored under their canonical name.
	if sys, err := calendar.ParseSystem(s.Calendar); err == nil {
		s.Calendar = sys.String()
	}
	if s.Language == "" {
		s.Language = d.Language
	}
	if s.Refresh == "" {
		s.Refresh = d.Refresh
	}
}

// Validate reports the first setting that cannot be used.
func (s *Settings) Validate() error {
	if err := ValidatePort(s.Port); err != nil {
		return err
	}

	if _, err := calendar.ParseSystem(s.Calendar); err != nil {
		return fmt.Errorf("%s: %q", ErrSettingsCalendar, s.Calendar)
	}

	tag, err := language.Parse(s.Language)
	if err != nil {
		return fmt.Errorf("%s: %q: %w", ErrSettingsLanguage, s.Language, err)
	}
	base, _ := tag.Base()
	if !isSupportedLanguage(base.String()) {
		return fmt.Errorf("%s: %q", ErrSettingsLanguage, s.Language)
	}

	if _, err := cron.ParseStandard(s.Refresh); err != nil {
		return fmt.Errorf("%s: %q: %w", ErrSettingsCron, s.Refresh, err)
	}
	return nil
}

// ValidatePort checks a localhost port string.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrPortNumber, err)
	}
	// Port 0 lets the OS pick a free port (tests).
	if n < 0 || n > 65535 {
		return errors.New(ErrPortRange)
	}
	return nil
}

func isSupportedLanguage(code string) bool {
	for _, l := range SupportedLanguages {
		if l == code {
			return true
		}
	}
	return false
}

// LoadSettings reads the YAML file at path.
//
// On first run the file does not exist: the parent directory is created, the
// defaults are written with 0600 permissions and returned.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return nil, errors.New(ErrSettingsPath)
	}
	log := slog.With(LogKeyComponent, CompSettings, LogKeyPath, path)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", ErrSettingsRead, err)
		}
		s := DefaultSettings()
		s.NotesPath = filepath.Join(filepath.Dir(path), NotesFileName)
		if err := SaveSettings(path, s); err != nil {
			// The defaults are still usable for this run.
			return s, err
		}
		log.Info(MsgSettingsCreate)
		return s, nil
	}

	s := &Settings{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}
	s.Normalize()
	if s.NotesPath == "" {
		s.NotesPath = filepath.Join(filepath.Dir(path), NotesFileName)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	log.Debug(MsgSettingsLoaded, LogKeyCalendar, s.Calendar, LogKeyLang, s.Language)
	return s, nil
}

// SaveSettings writes s as YAML through a temporary file and a rename.
func SaveSettings(path string, s *Settings) error {
	if path == "" {
		return errors.New(ErrSettingsPath)
	}
	if err := os.MkdirAll(filepath.Dir(path), DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", ErrCreateDir, err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}
	return nil
}

// DefaultSettingsPath returns <user config dir>/<AppID>/settings.yaml.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	return filepath.Join(dir, AppID, SettingsFileName), nil
}
