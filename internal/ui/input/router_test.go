package input

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/infrastructure/terminal"
)

type recorder struct {
	calls []string
}

func (r *recorder) PointerDown(_ context.Context, p entity.Vec) { r.add("down", p) }
func (r *recorder) PointerMove(_ context.Context, p entity.Vec) { r.add("move", p) }
func (r *recorder) PointerUp(_ context.Context, p entity.Vec)   { r.add("up", p) }
func (r *recorder) Exit(context.Context)                        { r.calls = append(r.calls, "exit") }

func (r *recorder) KeyPress(_ context.Context, key entity.KeyCode) bool {
	r.calls = append(r.calls, "edit-key "+key.String())
	return true
}

func (r *recorder) HandleKey(_ context.Context, key entity.KeyCode) bool {
	r.calls = append(r.calls, "play-key "+key.String())
	return true
}

func (r *recorder) add(what string, p entity.Vec) {
	r.calls = append(r.calls, fmt.Sprintf("%s %.0f,%.0f", what, p.X, p.Y))
}

func cellToPixel(col, row int) entity.Vec {
	return entity.Vec{X: float64(col * 10), Y: float64(row * 20)}
}

func newTestRouter() (*Router, *recorder) {
	rec := &recorder{}
	return NewRouter(rec, rec, cellToPixel), rec
}

func key(keys ...entity.KeyCode) terminal.Event {
	return terminal.Event{Kind: terminal.EventKey, Keys: keys}
}

func ctrl(letter byte) terminal.Event {
	ev := key(entity.KeyControl, entity.KeyCode(letter-'a'+'A'))
	ev.Ctrl = letter
	return ev
}

func mouse(action terminal.MouseAction, col, row int) terminal.Event {
	return terminal.Event{Kind: terminal.EventMouse, Mouse: terminal.Mouse{Action: action, Col: col, Row: row}}
}

func TestRouter_PlayModeSendsEveryKeyToTranslator(t *testing.T) {
	r, rec := newTestRouter()
	ctx := context.Background()

	r.Handle(ctx, key(entity.KeyShift, 'A'))

	assert.Equal(t, []string{"play-key Shift", "play-key A"}, rec.calls)
}

func TestRouter_PlayModeIgnoresPointer(t *testing.T) {
	r, rec := newTestRouter()
	ctx := context.Background()

	r.Handle(ctx, mouse(terminal.MousePress, 1, 1))
	r.Handle(ctx, mouse(terminal.MouseRelease, 1, 1))

	assert.Empty(t, rec.calls)
}

func TestRouter_ToggleEditAndExit(t *testing.T) {
	r, rec := newTestRouter()
	ctx := context.Background()
	var changes []string
	r.SetOnModeChange(func(from, to Mode) { changes = append(changes, from.String()+">"+to.String()) })

	r.Handle(ctx, ctrl(ToggleEditChord))
	assert.Equal(t, ModeEdit, r.Mode())

	r.Handle(ctx, key('B'))
	r.Handle(ctx, ctrl(ToggleEditChord))

	assert.Equal(t, ModePlay, r.Mode())
	assert.Equal(t, []string{"edit-key B", "exit"}, rec.calls)
	assert.Equal(t, []string{"play>edit", "edit>play"}, changes)
}

func TestRouter_EditModePointerGesture(t *testing.T) {
	r, rec := newTestRouter()
	ctx := context.Background()
	r.SetMode(ctx, ModeEdit)

	r.Handle(ctx, mouse(terminal.MouseMotion, 0, 0)) // hover, no button
	r.Handle(ctx, mouse(terminal.MousePress, 10, 5))
	r.Handle(ctx, mouse(terminal.MouseMotion, 14, 7))
	r.Handle(ctx, mouse(terminal.MouseRelease, 14, 7))

	assert.Equal(t, []string{"down 100,100", "move 140,140", "up 140,140"}, rec.calls)
}

func TestRouter_SecondaryButtonIgnored(t *testing.T) {
	r, rec := newTestRouter()
	ctx := context.Background()
	r.SetMode(ctx, ModeEdit)

	ev := mouse(terminal.MousePress, 3, 3)
	ev.Mouse.Button = 2
	r.Handle(ctx, ev)
	r.Handle(ctx, mouse(terminal.MouseRelease, 3, 3))

	assert.Empty(t, rec.calls)
}

func TestRouter_Quit(t *testing.T) {
	r, rec := newTestRouter()

	assert.Equal(t, ActionQuit, r.Handle(context.Background(), ctrl(QuitChord)))
	assert.Empty(t, rec.calls)
}
