// Package config holds dotadr's two configuration sources:
//
//   - the project Configuration (dotadr.json), which records where the ADR
//     directory lives and is written by `init`, read by every other command;
//   - the user Settings (config.toml), optional per-user defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/aidanlsb/dotadr/internal/adrerr"
	"github.com/aidanlsb/dotadr/internal/atomicfile"
	"github.com/aidanlsb/dotadr/internal/logging"
)

// DefaultPath is where the project configuration lives unless overridden.
const DefaultPath = "./dotadr.json"

// Configuration is the persisted project configuration.
type Configuration struct {
	// Directory is the ADR directory, relative to the configuration file.
	Directory string `json:"directory"`
}

// Validate checks that Directory is set to something other than blanks.
func (c *Configuration) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Directory, validation.Required, validation.By(notBlank)),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// Store reads and writes the project configuration file. It never caches:
// every Load goes back to disk.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore returns a Store for the configuration file at path. An empty
// path selects DefaultPath.
func NewStore(path string, logger *slog.Logger) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return &Store{path: path, logger: logging.OrDiscard(logger)}
}

// Path returns the configuration file path.
func (s *Store) Path() string { return s.path }

// BaseDir is the directory relative ADR paths are resolved against.
func (s *Store) BaseDir() string { return filepath.Dir(s.path) }

// Exists reports whether the configuration file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// ResolveDirectory turns the configured directory into a usable path.
func (s *Store) ResolveDirectory(c *Configuration) string {
	dir := filepath.FromSlash(c.Directory)
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(s.BaseDir(), dir)
}

// Save persists directory. When the file already exists and overwrite is
// false, Save leaves it untouched and reports written=false.
func (s *Store) Save(directory string, overwrite bool) (written bool, err error) {
	s.logger.Debug("save configuration",
		slog.String("path", s.path),
		slog.String("directory", directory),
		slog.Bool("overwrite", overwrite))

	if s.Exists() && !overwrite {
		s.logger.Debug("configuration file already exists, keeping it", slog.String("path", s.path))
		return false, nil
	}

	cfg := Configuration{Directory: NormalizeDirectory(directory)}
	if err := cfg.Validate(); err != nil {
		return false, adrerr.Wrap(err, adrerr.KindInvalidState, adrerr.CodeInvalidInput,
			"invalid ADR directory %q", directory)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return false, fmt.Errorf("marshal configuration: %w", err)
	}
	data = append(data, '\n')

	if err := atomicfile.WriteFile(s.path, data, 0o644); err != nil {
		return false, fmt.Errorf("write configuration %s: %w", s.path, err)
	}
	return true, nil
}

// Load reads and validates the configuration file.
func (s *Store) Load() (*Configuration, error) {
	s.logger.Debug("load configuration", slog.String("path", s.path))

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, adrerr.NotFound(adrerr.CodeConfigMissing,
				"configuration file does not exist at %s (run 'dotadr init' first)", s.path)
		}
		return nil, fmt.Errorf("read configuration %s: %w", s.path, err)
	}

	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, adrerr.Wrap(err, adrerr.KindInvalidState, adrerr.CodeConfigCorrupt,
			"failed to read configuration at %s", s.path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, adrerr.Wrap(err, adrerr.KindInvalidState, adrerr.CodeConfigInvalid,
			"ADR directory value in %s is empty", s.path)
	}
	return &cfg, nil
}

// NormalizeDirectory cleans a directory into the slash-separated form
// stored on disk. Relative paths keep an explicit "./" prefix.
func NormalizeDirectory(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return ""
	}
	if filepath.IsAbs(dir) {
		return filepath.ToSlash(filepath.Clean(dir))
	}
	cleaned := filepath.ToSlash(filepath.Clean(dir))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return cleaned
	}
	return "./" + cleaned
}
