package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/logging"
)

// TranslateInputUseCase turns play-mode key presses into device touches.
//
// Activation compares the pressed key with the first key of each stored
// combo only; the rest of a combo is display-only.
type TranslateInputUseCase struct {
	store      *KeymapStore
	dispatcher *CommandDispatcher
	native     entity.NativeSize
	holdTime   time.Duration

	softKeyboardVisible bool
}

// NewTranslateInputUseCase creates a translator for keymaps in store.
func NewTranslateInputUseCase(
	store *KeymapStore,
	dispatcher *CommandDispatcher,
	native entity.NativeSize,
	holdTime time.Duration,
) *TranslateInputUseCase {
	return &TranslateInputUseCase{
		store:      store,
		dispatcher: dispatcher,
		native:     native,
		holdTime:   holdTime,
	}
}

// SetSoftKeyboardVisible records the device soft keyboard state. While it is
// visible, key presses are left to the mirror window so the user can type.
// Returns true when the state changed.
func (uc *TranslateInputUseCase) SetSoftKeyboardVisible(ctx context.Context, visible bool) bool {
	if uc.softKeyboardVisible == visible {
		return false
	}
	uc.softKeyboardVisible = visible
	logging.FromContext(ctx).Info().Bool("visible", visible).Msg("soft keyboard state changed")
	return true
}

// SoftKeyboardVisible returns the last recorded soft keyboard state.
func (uc *TranslateInputUseCase) SoftKeyboardVisible() bool {
	return uc.softKeyboardVisible
}

// HandleKey processes a key press. It returns true when the key was consumed;
// unconsumed keys must fall through to normal input handling.
func (uc *TranslateInputUseCase) HandleKey(ctx context.Context, key entity.KeyCode) bool {
	log := logging.FromContext(ctx)

	if uc.softKeyboardVisible {
		return false
	}

	if key == entity.KeyEscape {
		uc.report(ctx, uc.dispatcher.KeyEvent(ctx, entity.KeyEventBack))
		return true
	}

	km := uc.store.FindByFirstKey(key)
	if km == nil {
		return false
	}

	x, y := km.NativeCenter(uc.native)
	log.Debug().
		Str("key", key.String()).
		Int("x", x).
		Int("y", y).
		Bool("hold", km.Hold).
		Msg("keymap activated")

	if km.Hold {
		uc.report(ctx, uc.dispatcher.Hold(ctx, x, y, uc.holdTime))
	} else {
		uc.report(ctx, uc.dispatcher.Tap(ctx, x, y))
	}
	return true
}

// report logs dispatch failures; they never interrupt the session.
func (uc *TranslateInputUseCase) report(ctx context.Context, err error) {
	if err == nil || errors.Is(err, ErrNoDisplayID) {
		return
	}
	logging.FromContext(ctx).Warn().Err(err).Msg("command dispatch failed, will retry on next key")
}
