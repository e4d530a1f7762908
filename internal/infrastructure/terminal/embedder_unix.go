//go:build unix

package terminal

import (
	"os"
	"os/signal"
	"syscall"
)

// startResizeListener forwards SIGWINCH to the resize callbacks.
func (e *Embedder) startResizeListener() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	go func() {
		for range sigCh {
			e.NotifyResize()
		}
	}()
}
