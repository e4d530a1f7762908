package adb

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/bnema/tapmap/internal/application/port"
)

// HostProbe queries the adb binary itself: its version and the device list.
type HostProbe struct {
	opts Options
	run  runner
}

var _ port.DeviceProbe = (*HostProbe)(nil)

func NewHostProbe(opts Options) *HostProbe {
	return &HostProbe{opts: opts, run: execRunner}
}

func (p *HostProbe) ToolVersion(ctx context.Context) (string, error) {
	out, err := p.exec(ctx, "version")
	if err != nil {
		return "", err
	}
	version, ok := ParseToolVersion(out)
	if !ok {
		return "", &port.DeviceProbeError{
			Kind:   port.DeviceProbeErrorKindUnknown,
			Output: firstLine(out),
		}
	}
	return version, nil
}

// Devices lists every attached device regardless of the configured serial.
func (p *HostProbe) Devices(ctx context.Context) ([]port.AttachedDevice, error) {
	out, err := p.exec(ctx, "devices")
	if err != nil {
		return nil, err
	}
	return ParseDevices(out), nil
}

func (p *HostProbe) exec(ctx context.Context, args ...string) ([]byte, error) {
	if !p.opts.Available() {
		return nil, &port.DeviceProbeError{
			Kind: port.DeviceProbeErrorKindToolMissing,
			Err:  port.ErrToolMissing,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultProbeTimeout)
	defer cancel()

	out, err := p.run(ctx, p.opts.path(), args...)
	if err != nil {
		var exitErr *exec.ExitError
		output := ""
		if errors.As(err, &exitErr) {
			output = strings.TrimSpace(string(exitErr.Stderr))
		}
		return nil, &port.DeviceProbeError{
			Kind:   port.DeviceProbeErrorKindCommand,
			Output: output,
			Err:    err,
		}
	}
	return out, nil
}

// ParseToolVersion extracts the protocol version from `adb version`, e.g.
// "1.0.41" from "Android Debug Bridge version 1.0.41".
func ParseToolVersion(out []byte) (string, bool) {
	const marker = "Android Debug Bridge version "
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if v, ok := strings.CutPrefix(line, marker); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// ParseDevices reads the serial and state columns of `adb devices`.
func ParseDevices(out []byte) []port.AttachedDevice {
	var devices []port.AttachedDevice
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		devices = append(devices, port.AttachedDevice{Serial: fields[0], State: fields[1]})
	}
	return devices
}

func firstLine(out []byte) string {
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line
}
