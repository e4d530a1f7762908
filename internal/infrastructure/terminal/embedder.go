package terminal

import (
	"context"
	"sync"

	"golang.org/x/term"

	"github.com/bnema/tapmap/internal/application/port"
	"github.com/bnema/tapmap/internal/domain/entity"
)

// SizeFunc reports the terminal size in cells.
type SizeFunc func() (cols, rows int, err error)

// Embedder presents the terminal window as the mirror container. Cells are
// converted to pixels with a fixed cell size.
type Embedder struct {
	size      SizeFunc
	cellW     int
	cellH     int
	mu        sync.Mutex
	onResize  []func()
	onMove    []func()
	listening bool
}

var _ port.WindowEmbedder = (*Embedder)(nil)

// NewEmbedder creates an embedder for the terminal on fd.
func NewEmbedder(fd int, cellW, cellH int) *Embedder {
	return NewEmbedderWithSize(func() (int, int, error) { return term.GetSize(fd) }, cellW, cellH)
}

// NewEmbedderWithSize creates an embedder with a custom size source.
func NewEmbedderWithSize(size SizeFunc, cellW, cellH int) *Embedder {
	return &Embedder{size: size, cellW: max(cellW, 1), cellH: max(cellH, 1)}
}

// ContainerRect implements port.WindowEmbedder. The rect starts at the
// terminal's top-left corner.
func (e *Embedder) ContainerRect(context.Context) (entity.ScreenRect, bool) {
	cols, rows, err := e.size()
	if err != nil || cols <= 0 || rows <= 0 {
		return entity.ScreenRect{}, false
	}
	return entity.ScreenRect{Width: cols * e.cellW, Height: rows * e.cellH}, true
}

// OnResize implements port.WindowEmbedder.
func (e *Embedder) OnResize(fn func()) {
	e.mu.Lock()
	e.onResize = append(e.onResize, fn)
	start := !e.listening
	e.listening = true
	e.mu.Unlock()

	if start {
		e.startResizeListener()
	}
}

// OnMove implements port.WindowEmbedder. A terminal does not report moves;
// callbacks only run through NotifyMove.
func (e *Embedder) OnMove(fn func()) {
	e.mu.Lock()
	e.onMove = append(e.onMove, fn)
	e.mu.Unlock()
}

// NotifyResize runs the resize callbacks.
func (e *Embedder) NotifyResize() { e.fire(&e.onResize) }

// NotifyMove runs the move callbacks.
func (e *Embedder) NotifyMove() { e.fire(&e.onMove) }

// ToLocal converts a zero-based cell to the pixel at its center.
func (e *Embedder) ToLocal(col, row int) entity.Vec {
	return entity.Vec{
		X: float64(col*e.cellW) + float64(e.cellW)/2,
		Y: float64(row*e.cellH) + float64(e.cellH)/2,
	}
}

func (e *Embedder) fire(list *[]func()) {
	e.mu.Lock()
	fns := append([]func(){}, *list...)
	e.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
