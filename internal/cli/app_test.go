package cli_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tapmap/internal/cli"
	"github.com/bnema/tapmap/internal/infrastructure/adb"
	"github.com/bnema/tapmap/internal/infrastructure/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewApp_JSONBackendSeedsDefaults(t *testing.T) {
	path := writeConfig(t, `
[device]
serial = 'emulator-5554'
display_id = 4

[adb]
keyboard_source = 'off'
`)

	app, err := cli.NewApp(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Equal(t, path, app.ConfigFile)
	assert.True(t, app.ConfigExists())
	assert.Equal(t, adb.Options{Path: "adb", Serial: "emulator-5554"}, app.ADBOptions())
	assert.Nil(t, app.KeyboardSource())

	store, err := app.LoadStore(app.Ctx())
	require.NoError(t, err)
	assert.Positive(t, store.Len())
	assert.FileExists(t, app.Config.Keymaps.File)

	profiles, err := app.Profiles(app.Ctx())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"default": store.Len()}, profiles)

	id, ok := app.NewDispatcher(app.Ctx()).DisplayID()
	assert.True(t, ok)
	assert.Equal(t, 4, id)
}

func TestNewApp_SQLiteBackendKeepsProfilesApart(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "keymaps.sqlite")

	racing := writeConfig(t, `
[keymaps]
backend = 'sqlite'
database = '`+db+`'
profile = 'racing'
`)
	app, err := cli.NewApp(racing)
	require.NoError(t, err)
	store, err := app.LoadStore(app.Ctx())
	require.NoError(t, err)
	store.Remove(store.At(0))
	require.NoError(t, store.Commit(app.Ctx()))
	racingCount := store.Len()
	require.NoError(t, app.Close())

	def := writeConfig(t, `
[keymaps]
backend = 'sqlite'
database = '`+db+`'
`)
	app, err = cli.NewApp(def)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	store, err = app.LoadStore(app.Ctx())
	require.NoError(t, err)

	profiles, err := app.Profiles(app.Ctx())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"racing": racingCount, "default": store.Len()}, profiles)
	assert.Equal(t, racingCount+1, store.Len())

	_, ok := app.NewDispatcher(app.Ctx()).DisplayID()
	assert.False(t, ok)
	assert.NotNil(t, app.KeyboardSource())
}

func TestNewApp_InvalidConfigFails(t *testing.T) {
	path := writeConfig(t, `
[device]
native_width = -1
`)
	_, err := cli.NewApp(path)
	assert.Error(t, err)
}

func TestWatchConfig_DeliversReloadedConfig(t *testing.T) {
	path := writeConfig(t, "[device]\ndisplay_id = 1\n")
	app, err := cli.NewApp(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	ids := make(chan int, 8)
	require.NoError(t, app.WatchConfig(app.Ctx(), func(cfg *config.Config) {
		ids <- cfg.Device.DisplayID
	}))

	require.NoError(t, os.WriteFile(path, []byte("[device]\ndisplay_id = 7\n"), 0o644))

	deadline := time.After(3 * time.Second)
	for {
		select {
		case id := <-ids:
			if id == 7 {
				return
			}
		case <-deadline:
			t.Fatal("no reload after config change")
		}
	}
}
