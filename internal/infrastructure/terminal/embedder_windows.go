//go:build windows

package terminal

// startResizeListener is a no-op; Windows consoles do not raise SIGWINCH.
func (e *Embedder) startResizeListener() {}
