package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/tapmap/internal/application/port"
	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/logging"
)

const defaultWriteTimeout = 250 * time.Millisecond

// CommandDispatcher serializes device input commands onto one long-lived
// control channel. The channel is connected lazily, reused for every command,
// and invalidated when a write fails so the next command reconnects.
type CommandDispatcher struct {
	channel      port.NativeChannel
	writeTimeout time.Duration

	displayID  int
	hasDisplay bool
}

// NewCommandDispatcher creates a dispatcher writing onto channel.
// writeTimeout bounds how long a single write may block the caller.
func NewCommandDispatcher(channel port.NativeChannel, writeTimeout time.Duration) *CommandDispatcher {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &CommandDispatcher{
		channel:      channel,
		writeTimeout: writeTimeout,
	}
}

// SetDisplayID sets the mirrored display that tap and swipe commands target.
func (d *CommandDispatcher) SetDisplayID(id int) {
	d.displayID = id
	d.hasDisplay = true
}

// DisplayID returns the current display id and whether it is known.
func (d *CommandDispatcher) DisplayID() (int, bool) {
	return d.displayID, d.hasDisplay
}

// KeyEvent sends `input keyevent <code>`.
func (d *CommandDispatcher) KeyEvent(ctx context.Context, code string) error {
	return d.Dispatch(ctx, entity.KeyEventCommand(code))
}

// Tap sends a tap at native pixel (x, y).
func (d *CommandDispatcher) Tap(ctx context.Context, x, y int) error {
	return d.Dispatch(ctx, entity.TapCommand(d.displayID, x, y))
}

// Swipe sends a swipe between two native pixels.
func (d *CommandDispatcher) Swipe(ctx context.Context, x1, y1, x2, y2 int, duration time.Duration) error {
	return d.Dispatch(ctx, entity.SwipeCommand(d.displayID, x1, y1, x2, y2, int(duration.Milliseconds())))
}

// Hold sends a zero-distance swipe at (x, y) lasting duration.
func (d *CommandDispatcher) Hold(ctx context.Context, x, y int, duration time.Duration) error {
	return d.Dispatch(ctx, entity.HoldCommand(d.displayID, x, y, int(duration.Milliseconds())))
}

// Dispatch writes cmd as one line on the control channel.
func (d *CommandDispatcher) Dispatch(ctx context.Context, cmd entity.Command) error {
	log := logging.FromContext(ctx)

	if cmd.NeedsDisplay() {
		if !d.hasDisplay {
			log.Warn().Str("command", cmd.Kind.String()).Msg("dropping command: display id not detected")
			return ErrNoDisplayID
		}
		cmd.DisplayID = d.displayID
	}

	if err := d.ensureConnected(ctx); err != nil {
		return err
	}

	line := cmd.String()
	writeCtx, cancel := context.WithTimeout(ctx, d.writeTimeout)
	defer cancel()

	if err := d.channel.WriteLine(writeCtx, line); err != nil {
		log.Warn().Err(err).Str("command", line).Msg("control channel write failed, invalidating")
		d.invalidate(ctx)
		return fmt.Errorf("%w: %w", ErrChannelDisconnected, err)
	}

	log.Debug().Str("command", line).Msg("command sent")
	return nil
}

// Close shuts the control channel down.
func (d *CommandDispatcher) Close() error {
	return d.channel.Close()
}

func (d *CommandDispatcher) ensureConnected(ctx context.Context) error {
	if d.channel.IsAlive() {
		return nil
	}

	log := logging.FromContext(ctx)
	log.Debug().Msg("establishing control channel")
	if err := d.channel.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to establish control channel")
		return fmt.Errorf("%w: %w", ErrChannelDisconnected, err)
	}
	log.Info().Msg("control channel established")
	return nil
}

func (d *CommandDispatcher) invalidate(ctx context.Context) {
	if err := d.channel.Close(); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("closing broken control channel")
	}
}
