package repository

import (
	"context"
	"errors"

	"github.com/bnema/tapmap/internal/domain/entity"
)

// ErrKeymapsNotFound is returned by Load when nothing has been stored yet.
var ErrKeymapsNotFound = errors.New("no stored keymaps")

// KeymapRepository persists the ordered keymap list of one profile.
type KeymapRepository interface {
	// Load returns the stored keymaps in their original order.
	// Malformed records are skipped; the remainder is still returned.
	// Returns ErrKeymapsNotFound when no keymaps were ever saved.
	Load(ctx context.Context) ([]*entity.Keymap, error)

	// Save replaces the stored list with keymaps, preserving order.
	Save(ctx context.Context, keymaps []*entity.Keymap) error
}
