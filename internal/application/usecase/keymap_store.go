package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/domain/repository"
	"github.com/bnema/tapmap/internal/logging"
)

// KeymapStore owns the canonical ordered keymap list. The play and edit
// overlays hold a reference to the same store, so edits are visible in play
// mode without a sync step.
//
// The store is confined to the UI loop and is not safe for concurrent use.
type KeymapStore struct {
	repo      repository.KeymapRepository
	keymaps   []*entity.Keymap
	listeners []func()
	dirty     bool
}

// NewKeymapStore creates an empty store backed by repo.
func NewKeymapStore(repo repository.KeymapRepository) *KeymapStore {
	return &KeymapStore{repo: repo}
}

// Load replaces the store contents with the persisted keymaps. When nothing
// was ever stored, seed is installed and written immediately. A failed
// write of the seed leaves the store dirty and is not returned.
func (s *KeymapStore) Load(ctx context.Context, seed []*entity.Keymap) error {
	log := logging.FromContext(ctx)

	loaded, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrKeymapsNotFound):
		log.Info().Int("count", len(seed)).Msg("no stored keymaps, installing defaults")
		s.keymaps = cloneAll(seed)
		s.dirty = true
		s.notify()
		// Commit already logged; the store stays dirty so the next commit retries
		_ = s.Commit(ctx)
		return nil
	case err != nil:
		return fmt.Errorf("failed to load keymaps: %w", err)
	}

	s.keymaps = loaded
	s.dirty = false
	log.Debug().Int("count", len(loaded)).Msg("keymaps loaded")
	s.notify()
	return nil
}

// Len returns the number of keymaps.
func (s *KeymapStore) Len() int {
	return len(s.keymaps)
}

// At returns the keymap at index i.
func (s *KeymapStore) At(i int) *entity.Keymap {
	return s.keymaps[i]
}

// All returns the keymaps in list order. The slice is a fresh copy; the
// keymaps themselves are shared.
func (s *KeymapStore) All() []*entity.Keymap {
	out := make([]*entity.Keymap, len(s.keymaps))
	copy(out, s.keymaps)
	return out
}

// IndexOf returns the index of km by identity, or -1.
func (s *KeymapStore) IndexOf(km *entity.Keymap) int {
	for i, k := range s.keymaps {
		if k == km {
			return i
		}
	}
	return -1
}

// Append adds km at the end of the list.
func (s *KeymapStore) Append(km *entity.Keymap) {
	s.keymaps = append(s.keymaps, km)
	s.Touch()
}

// Remove deletes km by identity, keeping the order of the others.
func (s *KeymapStore) Remove(km *entity.Keymap) bool {
	i := s.IndexOf(km)
	if i < 0 {
		return false
	}
	s.keymaps = append(s.keymaps[:i:i], s.keymaps[i+1:]...)
	s.Touch()
	return true
}

// Touch marks the store as modified in place and notifies listeners.
func (s *KeymapStore) Touch() {
	s.dirty = true
	s.notify()
}

// Dirty reports whether there are changes not yet persisted.
func (s *KeymapStore) Dirty() bool {
	return s.dirty
}

// FindByFirstKey returns the first keymap whose combo starts with key.
func (s *KeymapStore) FindByFirstKey(key entity.KeyCode) *entity.Keymap {
	for _, km := range s.keymaps {
		if len(km.Combo) > 0 && km.Combo.First() == key {
			return km
		}
	}
	return nil
}

// OnChange registers a listener called after every mutation.
func (s *KeymapStore) OnChange(fn func()) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

// Commit persists the current snapshot. On failure the in-memory list stays
// authoritative and remains dirty so the next commit retries.
func (s *KeymapStore) Commit(ctx context.Context) error {
	log := logging.FromContext(ctx)

	if err := s.repo.Save(ctx, s.keymaps); err != nil {
		log.Error().Err(err).Int("count", len(s.keymaps)).Msg("failed to persist keymaps")
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.dirty = false
	log.Debug().Int("count", len(s.keymaps)).Msg("keymaps persisted")
	return nil
}

func (s *KeymapStore) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// DefaultKeymaps returns the keymaps installed on first run: a Shift+A circle
// near the top-left corner and an A circle further in, both 100 native pixels wide.
func DefaultKeymaps(native entity.NativeSize) []*entity.Keymap {
	if native.Width <= 0 || native.Height <= 0 {
		return nil
	}
	w := float64(native.Width)
	h := float64(native.Height)
	size := entity.Vec{X: 100 / w, Y: 100 / h}

	first := entity.NewKeymap(entity.Vec{X: 50 / w, Y: 50 / h}, size)
	first.Combo = entity.KeyCombo{entity.KeyShift, 'A'}

	second := entity.NewKeymap(entity.Vec{X: 400 / w, Y: 300 / h}, size)
	second.Combo = entity.KeyCombo{'A'}

	return []*entity.Keymap{first, second}
}

func cloneAll(in []*entity.Keymap) []*entity.Keymap {
	out := make([]*entity.Keymap, len(in))
	for i, km := range in {
		out[i] = km.Clone()
	}
	return out
}
