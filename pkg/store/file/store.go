// Package file provides a file-based organizer store.
// The organizer is stored as a single JSON document in an XDG data directory.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/nasdeck/nasdeck/pkg/logging"
	"github.com/nasdeck/nasdeck/pkg/organizer"
	"github.com/nasdeck/nasdeck/pkg/store"
	"github.com/nasdeck/nasdeck/pkg/validation"
)

// Current data format version for migration support
const dataVersion = 1

// DataFile is the name of the organizer document inside the data directory.
const DataFile = "organizer.json"

// storeData is the persisted document.
type storeData struct {
	Version int `json:"version"`
	*organizer.Organizer
}

// FileStore implements store.OrganizerStore using a JSON file.
type FileStore struct {
	cfg store.Config
	mu  sync.Mutex
	log *slog.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a new FileStore with the given configuration.
func New(cfg store.Config, opts ...Option) *FileStore {
	if cfg.DataDir == "" {
		cfg.DataDir = store.DefaultDataDir()
	}
	s := &FileStore{cfg: cfg, log: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "store", "path", s.Path())
	return s
}

// DataDir returns the data directory path.
func (s *FileStore) DataDir() string {
	return s.cfg.DataDir
}

// Path returns the path of the organizer document.
func (s *FileStore) Path() string {
	return filepath.Join(s.cfg.DataDir, DataFile)
}

// Load reads, validates and normalizes the organizer document. A missing
// file yields a fresh organizer.
func (s *FileStore) Load(ctx context.Context) (*organizer.Organizer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug("no organizer file yet, starting fresh")
			return organizer.New(), nil
		}
		return nil, fmt.Errorf("reading organizer: %w", err)
	}

	var header struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &header); err == nil && header.Version > dataVersion {
		return nil, fmt.Errorf("%w: %s has version %d, this build reads up to %d",
			store.ErrUnsupportedVersion, s.Path(), header.Version, dataVersion)
	}

	o, result := validation.Validate(data)
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.Path(), err)
	}
	for _, w := range result.Warnings {
		s.log.Warn("organizer repaired on load", "at", w.Path, "code", w.Code, "detail", w.Message)
	}
	s.log.Debug("organizer loaded", "resources", len(o.Resources), "views", len(o.Views))
	return o, nil
}

// Save validates o and writes it atomically: the document goes to a temp
// file in the data directory which is then renamed over the old one.
func (s *FileStore) Save(ctx context.Context, o *organizer.Organizer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.cfg.ReadOnly {
		return store.ErrReadOnly
	}

	normalized, result := validation.ValidateOrganizer(o)
	if err := result.Err(); err != nil {
		return fmt.Errorf("saving organizer: %w", err)
	}

	data, err := json.MarshalIndent(storeData{Version: dataVersion, Organizer: normalized}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding organizer: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure the data directory exists with secure permissions (0700)
	if err := os.MkdirAll(s.cfg.DataDir, 0o700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := writeAtomic(s.Path(), data); err != nil {
		return err
	}
	s.log.Debug("organizer saved", "bytes", len(data))
	return nil
}

// writeAtomic writes data to a unique temp file next to path and renames it
// into place, so readers never see a partial document.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replacing organizer: %w", err)
	}
	return nil
}

var _ store.OrganizerStore = (*FileStore)(nil)
