package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/bnema/tapmap/internal/application/usecase"
	"github.com/bnema/tapmap/internal/bootstrap"
	"github.com/bnema/tapmap/internal/cli/styles"
	"github.com/bnema/tapmap/internal/infrastructure/config"
	"github.com/bnema/tapmap/internal/infrastructure/terminal"
	"github.com/bnema/tapmap/internal/logging"
	"github.com/bnema/tapmap/internal/ui"
	"github.com/bnema/tapmap/internal/ui/input"
	"github.com/bnema/tapmap/internal/ui/mainloop"
)

// ErrNotInteractive is returned when play is started without a terminal.
var ErrNotInteractive = errors.New("play needs an interactive terminal on stdin")

// PlayOptions tune one play session.
type PlayOptions struct {
	// DisplayID overrides the configured display id when >= 0.
	DisplayID int
	// Edit starts in edit mode.
	Edit bool
	// Preview overrides the configured preview PNG path.
	Preview string
}

// RunPlay runs the overlay in the current terminal until the user quits.
func RunPlay(ctx context.Context, app *App, opts PlayOptions) error {
	session := terminal.NewSession(os.Stdin, os.Stdout)
	if !session.IsTerminal() {
		return ErrNotInteractive
	}

	// the terminal is in raw mode while playing, so logs go to a file
	ctx, plog := app.sessionLog(ctx)
	defer plog.close()
	log := logging.FromContext(ctx)

	store, err := app.LoadStore(ctx)
	if err != nil {
		return err
	}

	dispatcher := app.NewDispatcher(ctx)
	if opts.DisplayID >= 0 {
		dispatcher.SetDisplayID(opts.DisplayID)
	}
	if _, ok := dispatcher.DisplayID(); !ok {
		fmt.Fprintln(os.Stderr, app.Theme.RenderWarning(
			"display id unknown: taps are dropped until --display-id or device.display_id is set"))
	}

	translator := usecase.NewTranslateInputUseCase(store, dispatcher, app.Native(), app.Config.ADB.HoldTime())

	preview := opts.Preview
	if preview == "" {
		preview = app.Config.Terminal.PreviewFile
	}

	embedder := terminal.NewEmbedder(int(os.Stdin.Fd()), app.Config.Terminal.CellWidthPx, app.Config.Terminal.CellHeightPx)

	overlay, err := ui.New(ctx, &ui.Dependencies{
		Config:      app.Config,
		Store:       store,
		Dispatcher:  dispatcher,
		Translator:  translator,
		Embedder:    embedder,
		Input:       os.Stdin,
		Keyboard:    app.KeyboardSource(),
		PreviewPath: preview,
	})
	if err != nil {
		return err
	}
	if opts.Edit {
		overlay.Post(func() { overlay.Router().SetMode(ctx, input.ModeEdit) })
	}
	if opts.DisplayID < 0 {
		// follows `display-id --save` run from another terminal
		err := app.WatchConfig(ctx, func(cfg *config.Config) {
			id := cfg.Device.DisplayID
			overlay.Post(func() { applyDisplayID(ctx, dispatcher, id) })
		})
		if err != nil {
			log.Warn().Err(err).Msg("config watch unavailable")
		}
	}

	if plog.path != "" {
		fmt.Fprintln(os.Stderr, app.Theme.RenderInfo(styles.IconFolder, "Logging to", plog.path))
	}
	fmt.Fprintln(os.Stderr, app.Theme.RenderHelpLine(
		[2]string{"ctrl+e", "toggle edit"},
		[2]string{"del", "remove selected"},
		[2]string{"esc", "cancel"},
		[2]string{"ctrl+c", "quit"},
	))

	if err := session.Enter(); err != nil {
		return err
	}
	defer func() {
		if rerr := session.Restore(); rerr != nil {
			log.Warn().Err(rerr).Msg("terminal not restored")
		}
	}()

	log.Info().Int("keymaps", store.Len()).Str("preview", preview).Msg("overlay running")
	err = overlay.Run(ctx)

	var perr *mainloop.PanicError
	if errors.As(err, &perr) {
		_ = session.Restore()
		plog.reportCrash(app.Theme, perr)
	}
	return err
}

// playLog is the file log of one play session.
type playLog struct {
	dir   string
	id    string
	path  string
	close func()
}

// sessionLog swaps the context logger for one writing to a session file. When
// the file cannot be opened logging is discarded and the path is empty.
func (a *App) sessionLog(ctx context.Context) (context.Context, playLog) {
	discard := playLog{close: func() {}}
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(a.Config.Logging.Level)

	dir, err := config.GetLogDir()
	if err != nil {
		return logging.WithContext(ctx, zerolog.Nop()), discard
	}
	id := logging.GenerateSessionID()
	logger, cleanup, err := logging.NewWithFile(cfg, logging.FileConfig{
		Enabled:   true,
		LogDir:    dir,
		SessionID: id,
	})
	if err != nil {
		a.Logger().Warn().Err(err).Msg("session log unavailable, logging disabled")
		discard.dir, discard.id = dir, id
		return logging.WithContext(ctx, zerolog.Nop()), discard
	}
	logger = logger.With().Str("device", a.Config.Device.Serial).Logger()
	return logging.WithContext(ctx, logger), playLog{
		dir:   dir,
		id:    id,
		path:  filepath.Join(dir, logging.SessionFilename(id)),
		close: cleanup,
	}
}

// reportCrash writes the crash report of a panicked session and tells the
// user where it is.
func (l playLog) reportCrash(theme *styles.Theme, perr *mainloop.PanicError) {
	if l.dir == "" {
		return
	}
	path, err := bootstrap.WriteCrashReport(l.dir, l.id, perr.Value, perr.Stack)
	if err != nil {
		fmt.Fprintln(os.Stderr, theme.RenderError(fmt.Errorf("crash report not written: %w", err)))
		return
	}
	fmt.Fprintln(os.Stderr, theme.RenderError(perr))
	fmt.Fprintln(os.Stderr, theme.RenderInfo(styles.IconFolder, "Crash report", path))
}

// applyDisplayID switches the dispatcher to a reloaded display id. Negative
// ids mean unknown and never replace a known one.
func applyDisplayID(ctx context.Context, dispatcher *usecase.CommandDispatcher, id int) {
	if id < 0 {
		return
	}
	if cur, ok := dispatcher.DisplayID(); ok && cur == id {
		return
	}
	dispatcher.SetDisplayID(id)
	logging.FromContext(ctx).Info().Int("display_id", id).Msg("display id reloaded from config")
}
