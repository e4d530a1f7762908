// Package input routes decoded keyboard and pointer events to the overlay:
// the edit controller while editing, the input translator while playing.
package input

import (
	"context"

	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/infrastructure/terminal"
	"github.com/bnema/tapmap/internal/logging"
)

// Mode represents the current input mode.
type Mode int

const (
	// ModePlay is the default mode where keys become device touches.
	ModePlay Mode = iota
	// ModeEdit captures pointer and keys for keymap authoring.
	ModeEdit
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModePlay:
		return "play"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Action is what the router asks its owner to do after an event.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
)

// Ctrl chords reserved by the router.
const (
	ToggleEditChord = 'e'
	QuitChord       = 'c'
)

// EditTarget receives edit-mode input in surface-local pixels.
type EditTarget interface {
	PointerDown(ctx context.Context, p entity.Vec)
	PointerMove(ctx context.Context, p entity.Vec)
	PointerUp(ctx context.Context, p entity.Vec)
	KeyPress(ctx context.Context, key entity.KeyCode) bool
	Exit(ctx context.Context)
}

// PlayTarget receives play-mode key presses.
type PlayTarget interface {
	HandleKey(ctx context.Context, key entity.KeyCode) bool
}

// Router dispatches terminal events according to the current mode. It must
// be used from the UI loop only.
type Router struct {
	mode    Mode
	edit    EditTarget
	play    PlayTarget
	toLocal func(col, row int) entity.Vec
	pressed bool

	onModeChange func(from, to Mode)
}

// NewRouter creates a router starting in play mode. toLocal converts a
// terminal cell to overlay pixels.
func NewRouter(edit EditTarget, play PlayTarget, toLocal func(col, row int) entity.Vec) *Router {
	return &Router{edit: edit, play: play, toLocal: toLocal}
}

// SetOnModeChange installs a callback run after every mode switch.
func (r *Router) SetOnModeChange(fn func(from, to Mode)) {
	r.onModeChange = fn
}

// Mode returns the current mode.
func (r *Router) Mode() Mode { return r.mode }

// SetMode switches modes. Leaving edit mode finishes the edit session.
func (r *Router) SetMode(ctx context.Context, mode Mode) {
	if r.mode == mode {
		return
	}
	from := r.mode
	if from == ModeEdit {
		r.edit.Exit(ctx)
	}
	r.mode = mode
	r.pressed = false
	logging.FromContext(ctx).Info().Str("from", from.String()).Str("to", mode.String()).Msg("input mode changed")
	if r.onModeChange != nil {
		r.onModeChange(from, mode)
	}
}

// Handle routes one event.
func (r *Router) Handle(ctx context.Context, ev terminal.Event) Action {
	switch ev.Kind {
	case terminal.EventKey:
		return r.handleKey(ctx, ev)
	case terminal.EventMouse:
		r.handleMouse(ctx, ev.Mouse)
	}
	return ActionNone
}

func (r *Router) handleKey(ctx context.Context, ev terminal.Event) Action {
	switch ev.Ctrl {
	case QuitChord:
		return ActionQuit
	case ToggleEditChord:
		if r.mode == ModeEdit {
			r.SetMode(ctx, ModePlay)
		} else {
			r.SetMode(ctx, ModeEdit)
		}
		return ActionNone
	}

	log := logging.FromContext(ctx)
	for _, key := range ev.Keys {
		var consumed bool
		if r.mode == ModeEdit {
			consumed = r.edit.KeyPress(ctx, key)
		} else {
			consumed = r.play.HandleKey(ctx, key)
		}
		if !consumed {
			log.Trace().Str("key", key.String()).Str("mode", r.mode.String()).Msg("key not consumed")
		}
	}
	return ActionNone
}

// handleMouse forwards primary-button gestures in edit mode. In play mode
// the overlay is pass-through and pointer input is ignored.
func (r *Router) handleMouse(ctx context.Context, m terminal.Mouse) {
	if r.mode != ModeEdit {
		return
	}
	p := r.toLocal(m.Col, m.Row)

	switch m.Action {
	case terminal.MousePress:
		if m.Button != 0 {
			return
		}
		r.pressed = true
		r.edit.PointerDown(ctx, p)
	case terminal.MouseMotion:
		if r.pressed {
			r.edit.PointerMove(ctx, p)
		}
	case terminal.MouseRelease:
		if r.pressed {
			r.pressed = false
			r.edit.PointerUp(ctx, p)
		}
	}
}
