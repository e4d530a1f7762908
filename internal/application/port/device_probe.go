package port

import (
	"context"
	"errors"
	"fmt"
)

// DeviceProbeErrorKind describes the category of a device probe failure.
type DeviceProbeErrorKind string

const (
	DeviceProbeErrorKindToolMissing DeviceProbeErrorKind = "tool_missing"
	DeviceProbeErrorKindCommand     DeviceProbeErrorKind = "command_failed"
	DeviceProbeErrorKindUnknown     DeviceProbeErrorKind = "unknown"
)

// ErrToolMissing indicates the adb executable is not available on the host.
var ErrToolMissing = errors.New("adb executable missing")

// DeviceProbeError wraps an error returned by device probing.
type DeviceProbeError struct {
	Kind   DeviceProbeErrorKind
	Output string
	Err    error
}

func (e *DeviceProbeError) Error() string {
	if e == nil {
		return "device probe error"
	}
	msg := fmt.Sprintf("device probe (%s)", e.Kind)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DeviceProbeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AttachedDevice is one line of the device list.
type AttachedDevice struct {
	Serial string
	// State is "device" when usable, otherwise e.g. "offline" or "unauthorized".
	State string
}

// DeviceProbe discovers the host tool and the devices it can reach.
type DeviceProbe interface {
	ToolVersion(ctx context.Context) (string, error)
	Devices(ctx context.Context) ([]AttachedDevice, error)
}
