package port

import (
	"context"

	"github.com/bnema/tapmap/internal/domain/entity"
)

// WindowEmbedder hosts the mirrored display window. It reports the container
// rectangle in screen pixels and notifies when that rectangle may have changed.
type WindowEmbedder interface {
	// ContainerRect returns the current container rect.
	// ok is false while the embedded window is not ready yet.
	ContainerRect(ctx context.Context) (rect entity.ScreenRect, ok bool)

	// OnResize registers a callback fired after the container is resized.
	OnResize(fn func())

	// OnMove registers a callback fired after the container or its top-level
	// window moved, even without a resize.
	OnMove(fn func())
}
