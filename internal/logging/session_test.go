package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFilenameRoundTrip(t *testing.T) {
	id := GenerateSessionID()
	assert.Regexp(t, `^\d{8}_\d{6}_[0-9a-f]{4}$`, id)

	got, ok := ParseSessionFilename(SessionFilename(id))
	require.True(t, ok)
	assert.Equal(t, id, got)

	for _, name := range []string{"session_.log", "other_1.log", "session_1.txt"} {
		_, ok := ParseSessionFilename(name)
		assert.False(t, ok, name)
	}
}

func TestNewWithFile_WritesJSONLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := DefaultConfig()
	cfg.Level = zerolog.DebugLevel

	logger, cleanup, err := NewWithFile(cfg, FileConfig{Enabled: true, LogDir: dir, SessionID: "play"})
	require.NoError(t, err)
	logger.Debug().Str("key", "A").Msg("tap sent")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, "session_play.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"tap sent"`)
	assert.Contains(t, string(data), `"session":"play"`)
}

func TestNewWithFile_DisabledWritesNoFile(t *testing.T) {
	dir := t.TempDir()
	logger, cleanup, err := NewWithFile(DefaultConfig(), FileConfig{LogDir: dir})
	require.NoError(t, err)
	defer cleanup()
	logger.Info().Msg("dropped")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestShortSessionID(t *testing.T) {
	assert.Equal(t, "a7b3", ShortSessionID("20251217_205106_a7b3"))
	assert.Equal(t, "ab", ShortSessionID("ab"))
}
