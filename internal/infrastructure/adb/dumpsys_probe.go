package adb

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/bnema/tapmap/internal/application/port"
)

const defaultProbeTimeout = 3 * time.Second

// runner executes a command and returns its stdout. Tests replace it.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// DumpsysProbe reads the soft keyboard state from `dumpsys input_method`.
type DumpsysProbe struct {
	opts    Options
	timeout time.Duration
	run     runner
}

var _ port.KeyboardStatusProbe = (*DumpsysProbe)(nil)

// NewDumpsysProbe creates a probe. Each call spawns one short-lived adb
// process; the probe is meant to be polled about once a second.
func NewDumpsysProbe(opts Options) *DumpsysProbe {
	return &DumpsysProbe{opts: opts, timeout: defaultProbeTimeout, run: execRunner}
}

// SoftKeyboardVisible implements port.KeyboardStatusProbe.
func (p *DumpsysProbe) SoftKeyboardVisible(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.run(ctx, p.opts.path(), p.opts.args("shell", "dumpsys", "input_method")...)
	if err != nil {
		return false, fmt.Errorf("dumpsys input_method: %w", err)
	}
	return ParseInputShown(out)
}

// ParseInputShown finds the mInputShown flag in dumpsys output.
func ParseInputShown(out []byte) (bool, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.Index(line, "mInputShown=")
		if idx < 0 {
			continue
		}
		value := line[idx+len("mInputShown="):]
		if end := strings.IndexAny(value, " \t"); end >= 0 {
			value = value[:end]
		}
		return value == "true", nil
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return false, fmt.Errorf("mInputShown not present in dumpsys output")
}
