package port

import "context"

// NativeChannel is a long-lived text control channel to the device
// (an `adb shell` session). One command is written per line.
type NativeChannel interface {
	// Connect establishes the channel. Calling it on a live channel replaces it.
	Connect(ctx context.Context) error

	// WriteLine writes text followed by a newline and flushes it.
	WriteLine(ctx context.Context, text string) error

	// IsAlive reports whether the channel is established and its process running.
	IsAlive() bool

	// Close tears the channel down. It is safe to call on a closed channel.
	Close() error
}
