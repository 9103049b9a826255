package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "komikd"), Root())
}

func TestStoreLifecycle(t *testing.T) {
	s := NewStore(t.TempDir())

	_, err := s.ActivePath()
	assert.ErrorIs(t, err, ErrNoConfig)

	path, err := s.InitDefault()
	require.NoError(t, err)
	assert.FileExists(t, path)

	again, err := s.InitDefault()
	assert.ErrorIs(t, err, os.ErrExist)
	assert.Equal(t, path, again)

	_, err = s.Create("night")
	require.NoError(t, err)
	_, err = s.Create("night")
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, s.Switch("night"))
	label, err := s.CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "night", label)

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Default", list[0].Label)
	assert.False(t, list[0].Active)
	assert.Equal(t, "night", list[1].Label)
	assert.True(t, list[1].Active)

	require.NoError(t, s.Remove("night"))
	label, err = s.CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Default", label)

	assert.Error(t, s.Remove("Default"))
	assert.Error(t, s.Switch("missing"))
}

func TestStoreRejectsBadLabels(t *testing.T) {
	s := NewStore(t.TempDir())

	_, err := s.Create("  ")
	assert.Error(t, err)
	_, err = s.Create("../escape")
	assert.Error(t, err)
}

func TestStoreReset(t *testing.T) {
	s := NewStore(t.TempDir())
	path, err := s.InitDefault()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("output: /tmp/x\n"), 0644))

	got, err := s.Reset()
	require.NoError(t, err)
	assert.Equal(t, path, got)

	cfg, _, err := s.Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "downloads", cfg.Output)
}
