package usecase

import "errors"

var (
	// ErrChannelDisconnected is returned when the control channel could not be
	// established or a write on it failed. The next command reconnects.
	ErrChannelDisconnected = errors.New("control channel disconnected")

	// ErrPersistence is returned when saving keymaps failed. The in-memory
	// store stays authoritative and the next commit retries.
	ErrPersistence = errors.New("keymap persistence failed")

	// ErrNoDisplayID is returned for display-targeted commands before the
	// mirrored display id is known.
	ErrNoDisplayID = errors.New("display id not known")
)
