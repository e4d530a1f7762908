package adb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/bnema/tapmap/internal/logging"
)

// ImeTracker log fragments marking the soft keyboard being shown or hidden.
var (
	imeShowMarkers = []string{
		"onRequestShow at ORIGIN_CLIENT reason SHOW_SOFT_INPUT",
	}
	imeHideMarkers = []string{
		"onCancelled at PHASE_SERVER_SHOULD_HIDE",
		"onCancelled at PHASE_CLIENT_ALREADY_HIDDEN",
		"onRequestHide at ORIGIN_CLIENT",
	}
)

// ClassifyImeLine reports whether a logcat line shows (true) or hides (false)
// the soft keyboard. ok is false for unrelated lines.
func ClassifyImeLine(line string) (visible, ok bool) {
	if !strings.Contains(line, "ImeTracker") {
		return false, false
	}
	for _, m := range imeShowMarkers {
		if strings.Contains(line, m) {
			return true, true
		}
	}
	for _, m := range imeHideMarkers {
		if strings.Contains(line, m) {
			return false, true
		}
	}
	return false, false
}

// LogcatMonitor follows `logcat -s ImeTracker` and reports soft keyboard
// transitions as they happen instead of polling.
type LogcatMonitor struct {
	opts Options
}

// NewLogcatMonitor creates a monitor for the device selected by opts.
func NewLogcatMonitor(opts Options) *LogcatMonitor {
	return &LogcatMonitor{opts: opts}
}

// Run streams logcat until ctx is done and sends each transition on out.
func (m *LogcatMonitor) Run(ctx context.Context, out chan<- bool) error {
	log := logging.FromContext(ctx).With().Str("component", "logcat-monitor").Logger()

	// -T 1 skips the backlog so stale transitions are not replayed
	cmd := exec.CommandContext(ctx, m.opts.path(), m.opts.args("logcat", "-T", "1", "-s", "ImeTracker")...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open logcat stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start logcat: %w", err)
	}
	log.Info().Msg("following ImeTracker events")

	err = Follow(ctx, stdout, out)
	_ = cmd.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// Follow classifies lines from r and sends keyboard transitions on out until
// r ends or ctx is done.
func Follow(ctx context.Context, r io.Reader, out chan<- bool) error {
	reader := NewStreamReader(r, 0)
	for {
		line, err := reader.WaitLine(ctx)
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("logcat stream ended")
		}
		if err != nil {
			return nil
		}
		visible, ok := ClassifyImeLine(line)
		if !ok {
			continue
		}
		select {
		case out <- visible:
		case <-ctx.Done():
			return nil
		}
	}
}
