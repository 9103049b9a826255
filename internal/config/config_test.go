package config

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutProfileUsesDefaults(t *testing.T) {
	s := NewStore(t.TempDir())

	cfg, used, err := s.Load(Options{Output: "/srv/komik"})
	require.NoError(t, err)
	assert.Contains(t, used, "default config in memory")
	assert.Equal(t, "/srv/komik", cfg.Output)
	assert.Equal(t, "-chapter-", cfg.ChapterToken)
	assert.Equal(t, "readerarea", cfg.ReaderID)
	assert.Equal(t, 2*time.Second, cfg.SettleDelay)
}

func TestLoadActiveProfileWithOverrides(t *testing.T) {
	s := NewStore(t.TempDir())
	path, err := s.InitDefault()
	require.NoError(t, err)

	yml := "output: /data/komik\nchapter_token: -ch-\nsettle_delay: 5s\nrenderer: http\nreader_id: \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	cfg, used, err := s.Load(Options{UserAgent: "komikd-test", WaitForReader: true})
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "/data/komik", cfg.Output)
	assert.Equal(t, "-ch-", cfg.ChapterToken)
	assert.Equal(t, 5*time.Second, cfg.SettleDelay)
	assert.Equal(t, "http", cfg.Renderer)
	assert.Equal(t, "readerarea", cfg.ReaderID)
	assert.Equal(t, "komikd-test", cfg.UserAgent)
	assert.True(t, cfg.WaitForReader)
}

func TestLoadIgnoreConfig(t *testing.T) {
	s := NewStore(t.TempDir())
	path, err := s.InitDefault()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("output: /elsewhere\n"), 0644))

	cfg, used, err := s.Load(Options{IgnoreConfig: true})
	require.NoError(t, err)
	assert.Equal(t, "(ignored config)", used)
	assert.Equal(t, DefaultConfig().Output, cfg.Output)
}

func TestLoadBrokenProfile(t *testing.T) {
	s := NewStore(t.TempDir())
	path, err := s.InitDefault()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("output: [\n"), 0644))

	_, _, err = s.Load(Options{})
	assert.ErrorContains(t, err, "failed to load config")
}

func TestSaveYAMLRoundTripsDurations(t *testing.T) {
	s := NewStore(t.TempDir())
	path, err := s.Create("fast")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "settle_delay: 2s")
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	DefaultConfig().Print(&buf)

	assert.Contains(t, buf.String(), " -output: downloads\n")
	assert.Contains(t, buf.String(), " -settle_delay: 2s\n")
}
