// Package store persists organizer snapshots.
//
// Two backends exist: a JSON file store (package store/file) used by the
// CLI, and an in-memory store used for dry runs and tests. Both validate
// every snapshot on load and save.
//
// Directory structure follows the XDG Base Directory Specification:
//   - Config: ~/.config/nasdeck/ (config.yaml)
//   - Data:   ~/.local/share/nasdeck/ (organizer.json)
//
// Concurrent writers in separate processes are not coordinated: the last
// successful Save wins.
package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"github.com/nasdeck/nasdeck/pkg/organizer"
)

// AppName names the per-user directories.
const AppName = "nasdeck"

// Common errors
var (
	ErrReadOnly           = errors.New("store is read-only")
	ErrUnsupportedVersion = errors.New("unsupported data version")
)

// Backend represents a storage backend type.
type Backend string

const (
	// BackendFile stores the organizer as a JSON file in DataDir
	BackendFile Backend = "file"
	// BackendMemory keeps the organizer in memory only
	BackendMemory Backend = "memory"
)

// Config holds store configuration.
type Config struct {
	// Backend specifies the storage backend to use
	Backend Backend `json:"backend" yaml:"backend"`

	// DataDir is the directory holding organizer.json.
	// Defaults to XDG_DATA_HOME/nasdeck or ~/.local/share/nasdeck
	DataDir string `json:"dataDir,omitempty" yaml:"dataDir,omitempty"`

	// ReadOnly prevents any write operations
	ReadOnly bool `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{
		Backend: BackendFile,
		DataDir: DefaultDataDir(),
	}
}

// OrganizerStore loads and saves whole organizer snapshots.
type OrganizerStore interface {
	// Load returns the current snapshot, or organizer.New() when nothing
	// has been saved yet. The caller owns the returned value.
	Load(ctx context.Context) (*organizer.Organizer, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, o *organizer.Organizer) error
}

// DefaultDataDir returns the default data directory following the XDG base directory layout.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+AppName, "data")
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", AppName)
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(home, "AppData", "Local", AppName)
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// DefaultConfigDir returns the default config directory following the XDG base directory layout.
func DefaultConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+AppName, "config")
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Preferences", AppName)
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(home, "AppData", "Roaming", AppName)
	}
	return filepath.Join(home, ".config", AppName)
}
