// Package cli holds the dependencies shared by the tapmap commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/bnema/tapmap/internal/application/usecase"
	"github.com/bnema/tapmap/internal/cli/styles"
	"github.com/bnema/tapmap/internal/domain/build"
	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/domain/repository"
	"github.com/bnema/tapmap/internal/infrastructure/adb"
	"github.com/bnema/tapmap/internal/infrastructure/config"
	"github.com/bnema/tapmap/internal/infrastructure/persistence/jsonfile"
	"github.com/bnema/tapmap/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tapmap/internal/logging"
	"github.com/bnema/tapmap/internal/ui"
)

// App holds CLI dependencies.
type App struct {
	Config     *config.Config
	ConfigFile string
	Theme      *styles.Theme
	BuildInfo  build.Info

	// Repo persists the keymaps of the configured profile.
	Repo repository.KeymapRepository

	db      *sqlite.LazyDB
	manager *config.Manager
	ctx     context.Context
}

// NewApp loads configuration and builds the keymap repository. configFile
// overrides the XDG location when set.
func NewApp(configFile string) (*App, error) {
	mgr, err := newManager(configFile)
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithDevice(logging.WithContext(context.Background(), logger), cfg.Device.Serial)

	app := &App{
		Config:     cfg,
		ConfigFile: mgr.GetConfigFile(),
		Theme:      styles.NewTheme(),
		manager:    mgr,
		ctx:        ctx,
	}
	app.Repo = app.newRepository()

	logger.Debug().
		Str("config", app.ConfigFile).
		Str("backend", string(cfg.Keymaps.Backend)).
		Str("profile", cfg.Keymaps.Profile).
		Msg("cli initialized")
	return app, nil
}

func newManager(configFile string) (*config.Manager, error) {
	if configFile != "" {
		return config.NewManagerForFile(configFile)
	}
	return config.NewManager()
}

func (a *App) newRepository() repository.KeymapRepository {
	if a.Config.Keymaps.Backend == config.KeymapsBackendSQLite {
		a.db = sqlite.NewLazyDB(a.Config.Keymaps.Database)
		return sqlite.NewKeymapRepository(a.db, a.Config.Keymaps.Profile)
	}
	return jsonfile.NewKeymapRepository(a.Config.Keymaps.File)
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return logging.FromContext(a.ctx)
}

// Native returns the configured device resolution.
func (a *App) Native() entity.NativeSize {
	return a.Config.Device.Native()
}

// ADBOptions returns the adb invocation settings.
func (a *App) ADBOptions() adb.Options {
	return adb.Options{
		Path:   a.Config.ADB.Path,
		Serial: a.Config.Device.Serial,
		UsePTY: a.Config.ADB.UsePTY,
	}
}

// LoadStore loads the keymaps of the configured profile, installing the
// default layout when none were ever stored.
func (a *App) LoadStore(ctx context.Context) (*usecase.KeymapStore, error) {
	store := usecase.NewKeymapStore(a.Repo)
	if err := store.Load(ctx, usecase.DefaultKeymaps(a.Native())); err != nil {
		return nil, err
	}
	return store, nil
}

// NewDispatcher creates a dispatcher over a fresh adb shell channel. A
// display id in the config is applied; otherwise the caller sets one. Shell
// output is logged through the logger in ctx.
func (a *App) NewDispatcher(ctx context.Context) *usecase.CommandDispatcher {
	log := logging.FromContext(ctx)
	channel := adb.NewShellChannel(a.ADBOptions())
	channel.SetOutputHandler(func(stream, line string) {
		log.Debug().Str("stream", stream).Str("line", line).Msg("device output")
	})
	d := usecase.NewCommandDispatcher(channel, a.Config.ADB.WriteTimeout())
	if id, ok := a.Config.Device.KnownDisplayID(); ok {
		d.SetDisplayID(id)
	}
	return d
}

// KeyboardSource returns the configured soft keyboard monitor, or nil when
// monitoring is off.
func (a *App) KeyboardSource() ui.KeyboardSource {
	opts := a.ADBOptions()
	switch a.Config.ADB.KeyboardSource {
	case config.KeyboardSourceOff:
		return nil
	case config.KeyboardSourceLogcat:
		return adb.NewLogcatMonitor(opts).Run
	default:
		poll := usecase.NewPollKeyboardStatusUseCase(adb.NewDumpsysProbe(opts), a.Config.ADB.KeyboardPollInterval())
		return poll.Run
	}
}

// Profiles lists stored profiles. Only the sqlite backend has more than one.
func (a *App) Profiles(ctx context.Context) (map[string]int, error) {
	if a.db == nil {
		keymaps, err := a.Repo.Load(ctx)
		if err != nil && !errors.Is(err, repository.ErrKeymapsNotFound) {
			return nil, err
		}
		return map[string]int{a.Config.Keymaps.Profile: len(keymaps)}, nil
	}
	return sqlite.ListProfiles(ctx, a.db)
}

// Close releases all resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// ConfigExists reports whether the config file is on disk.
func (a *App) ConfigExists() bool {
	_, err := os.Stat(a.ConfigFile)
	return err == nil
}

// WatchConfig calls fn with every valid config written to the file while the
// process runs. fn runs on the watcher goroutine.
func (a *App) WatchConfig(ctx context.Context, fn func(*config.Config)) error {
	a.manager.OnConfigChange(fn)
	return a.manager.Watch(ctx)
}
