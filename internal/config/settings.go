package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/aidanlsb/dotadr/internal/adrerr"
	"github.com/aidanlsb/dotadr/internal/atomicfile"
	"github.com/aidanlsb/dotadr/internal/slugs"
)

// DefaultDirectory is the ADR directory `init` uses when none is given.
const DefaultDirectory = "./doc/adr"

// Settings are optional per-user defaults read from config.toml.
type Settings struct {
	// DefaultDirectory replaces DefaultDirectory for `init`.
	DefaultDirectory string `toml:"default_directory"`

	// SlugStyle is "conservative" (default) or "ascii".
	SlugStyle string `toml:"slug_style"`

	// Editor opens new records with `add --open` (defaults to $EDITOR).
	Editor string `toml:"editor"`

	// LogLevel is the level used without --debug: debug, info, warn or error.
	LogLevel string `toml:"log_level"`
}

// Validate checks enumerated fields.
func (s *Settings) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.SlugStyle, validation.In("conservative", "ascii")),
		validation.Field(&s.LogLevel, validation.In("debug", "info", "warn", "warning", "error")),
	)
}

// Directory returns the directory `init` should use by default.
func (s *Settings) Directory() string {
	if s != nil && strings.TrimSpace(s.DefaultDirectory) != "" {
		return s.DefaultDirectory
	}
	return DefaultDirectory
}

// Slugs returns the configured slug style.
func (s *Settings) Slugs() slugs.Style {
	if s == nil {
		return slugs.StyleConservative
	}
	style, err := slugs.ParseStyle(s.SlugStyle)
	if err != nil {
		return slugs.StyleConservative
	}
	return style
}

// GetEditor returns the editor to use, falling back to $EDITOR.
func (s *Settings) GetEditor() string {
	if s != nil && s.Editor != "" {
		return s.Editor
	}
	return os.Getenv("EDITOR")
}

// DefaultSettingsPath returns ~/.config/dotadr/config.toml when present,
// otherwise the OS-specific user config location.
func DefaultSettingsPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "dotadr", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "dotadr", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}

// LoadSettings reads settings from path. A missing file yields empty
// settings; a malformed or invalid one is an error.
func LoadSettings(path string) (*Settings, error) {
	var s Settings
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, adrerr.Wrap(err, adrerr.KindInvalidState, adrerr.CodeSettingsInvalid,
			"failed to parse settings %s", path)
	}
	s.SlugStyle = strings.ToLower(strings.TrimSpace(s.SlugStyle))
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	if err := s.Validate(); err != nil {
		return nil, adrerr.Wrap(err, adrerr.KindInvalidState, adrerr.CodeSettingsInvalid,
			"invalid settings in %s", path)
	}
	return &s, nil
}

// SaveSettings writes s to path atomically, omitting empty fields.
func SaveSettings(path string, s *Settings) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("settings path is required")
	}
	if s == nil {
		s = &Settings{}
	}
	if err := s.Validate(); err != nil {
		return adrerr.Wrap(err, adrerr.KindInvalidState, adrerr.CodeSettingsInvalid, "invalid settings")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(persistedSettings{
		DefaultDirectory: nonEmptyPtr(s.DefaultDirectory),
		SlugStyle:        nonEmptyPtr(s.SlugStyle),
		Editor:           nonEmptyPtr(s.Editor),
		LogLevel:         nonEmptyPtr(s.LogLevel),
	}); err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	return nil
}

// CreateDefaultSettings writes a commented settings file if none exists.
// It reports whether a file was created.
func CreateDefaultSettings(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create settings directory: %w", err)
	}

	const defaultSettings = `# dotadr settings

# Directory used by 'dotadr init' when -d is not given.
# default_directory = "./doc/adr"

# File name slugs for new records:
#   conservative - keep the title, drop characters invalid in file names
#   ascii        - transliterate to plain ASCII (e.g. "Café" -> "cafe")
# slug_style = "conservative"

# Editor for 'dotadr add --open' (defaults to $EDITOR).
# editor = "code"

# Log level when --debug is not set: debug, info, warn, error.
# log_level = "warn"
`
	if err := atomicfile.WriteFile(path, []byte(defaultSettings), 0o644); err != nil {
		return false, fmt.Errorf("failed to write settings file: %w", err)
	}
	return true, nil
}

type persistedSettings struct {
	DefaultDirectory *string `toml:"default_directory,omitempty"`
	SlugStyle        *string `toml:"slug_style,omitempty"`
	Editor           *string `toml:"editor,omitempty"`
	LogLevel         *string `toml:"log_level,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
