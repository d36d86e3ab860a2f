package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasdeck/nasdeck/pkg/organizer"
	"github.com/nasdeck/nasdeck/pkg/validation"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Backend != BackendFile {
		t.Errorf("Backend = %q, want %q", config.Backend, BackendFile)
	}
	if config.DataDir == "" {
		t.Error("DataDir should not be empty")
	}
	if config.ReadOnly {
		t.Error("ReadOnly should default to false")
	}
}

func TestDefaultDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	dir := DefaultDataDir()
	if dir != filepath.Join("/custom/data", "nasdeck") {
		t.Errorf("with XDG_DATA_HOME: got %q, want %q", dir, "/custom/data/nasdeck")
	}

	t.Setenv("XDG_DATA_HOME", "")
	dir = DefaultDataDir()
	if dir == "" {
		t.Error("DefaultDataDir should not return empty string")
	}
	if filepath.Base(dir) != "nasdeck" && filepath.Base(dir) != "data" {
		t.Errorf("unexpected data dir %q", dir)
	}
}

func TestDefaultConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	dir := DefaultConfigDir()
	if dir != filepath.Join("/custom/config", "nasdeck") {
		t.Errorf("with XDG_CONFIG_HOME: got %q, want %q", dir, "/custom/config/nasdeck")
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	if DefaultConfigDir() == "" {
		t.Error("DefaultConfigDir should not return empty string")
	}
}

func TestErrors(t *testing.T) {
	if ErrReadOnly.Error() != "store is read-only" {
		t.Errorf("ErrReadOnly = %q, want %q", ErrReadOnly.Error(), "store is read-only")
	}
}

func TestMemoryStore_LoadEmpty(t *testing.T) {
	s := NewMemoryStore(nil)
	o, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, organizer.New(), o)
	assert.Zero(t, s.Revision())
}

func TestMemoryStore_SaveLoadIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(nil)

	o := organizer.Reconcile(organizer.New(), []organizer.Resource{{ID: "a", Name: "A"}})
	require.NoError(t, s.Save(ctx, o))
	assert.Equal(t, 1, s.Revision())

	// Changing what was saved or what was loaded must not reach the store.
	o.Views[organizer.DefaultViewID].RootFolder().Children = nil
	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, loaded.Views[organizer.DefaultViewID].RootFolder().Children)

	loaded.Resources["b"] = organizer.Resource{ID: "b"}
	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.NotContains(t, again.Resources, "b")
}

func TestMemoryStore_ReadOnly(t *testing.T) {
	s := NewMemoryStore(organizer.New())
	s.SetReadOnly(true)
	err := s.Save(context.Background(), organizer.New())
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.Zero(t, s.Revision())
}

func TestMemoryStore_RejectsInvalid(t *testing.T) {
	o := organizer.New()
	o.Views[organizer.DefaultViewID].RootFolder().Children = []string{""}
	err := NewMemoryStore(nil).Save(context.Background(), o)
	assert.ErrorIs(t, err, validation.ErrInvalid)
}

func TestMemoryStore_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore(nil)
	_, err := s.Load(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.ErrorIs(t, s.Save(ctx, organizer.New()), context.Canceled)
}
