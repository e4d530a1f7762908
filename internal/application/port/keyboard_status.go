package port

import "context"

// KeyboardStatusProbe reports whether the on-device soft keyboard is visible.
type KeyboardStatusProbe interface {
	SoftKeyboardVisible(ctx context.Context) (bool, error)
}
