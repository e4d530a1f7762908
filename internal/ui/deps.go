// Package ui runs the overlay without a windowing toolkit: the terminal plays
// the part of the mirror window, frames are rendered off-screen, and key and
// pointer input drive the same play and edit logic a desktop shell would.
package ui

import (
	"context"
	"io"

	"github.com/bnema/tapmap/internal/application/usecase"
	"github.com/bnema/tapmap/internal/infrastructure/config"
	"github.com/bnema/tapmap/internal/infrastructure/terminal"
)

// KeyboardSource reports soft keyboard transitions on out until ctx is done.
// Both the dumpsys poller and the logcat monitor fit this shape.
type KeyboardSource func(ctx context.Context, out chan<- bool) error

// Dependencies holds everything the headless app needs. It is assembled once
// by the CLI.
type Dependencies struct {
	Config *config.Config

	// Store must already be loaded.
	Store      *usecase.KeymapStore
	Dispatcher *usecase.CommandDispatcher
	Translator *usecase.TranslateInputUseCase

	Embedder *terminal.Embedder
	// Input delivers raw terminal bytes.
	Input io.Reader

	// Keyboard is optional; nil leaves translation always active.
	Keyboard KeyboardSource

	// PreviewPath receives PNG frames of the visible overlay. Empty disables it.
	PreviewPath string
}
