package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/tapmap/internal/application/port"
	"github.com/bnema/tapmap/internal/logging"
)

const defaultMinToolVersion = "1.0.39"

type DeviceCheckID string

const (
	DeviceCheckTool     DeviceCheckID = "adb"
	DeviceCheckDevice   DeviceCheckID = "device"
	DeviceCheckKeyboard DeviceCheckID = "keyboard"
)

// DeviceCheckStatus contains the result of one device check.
type DeviceCheckStatus struct {
	ID          DeviceCheckID
	DisplayName string

	// Found is false when the checked thing could not be reached at all.
	Found  bool
	Detail string

	RequiredVersion string
	OK              bool

	Error string
}

// CheckDeviceUseCase validates that input can be delivered to the device.
type CheckDeviceUseCase struct {
	probe    port.DeviceProbe
	keyboard port.KeyboardStatusProbe
}

// NewCheckDeviceUseCase creates a new use case. keyboard may be nil when
// no soft keyboard source is configured.
func NewCheckDeviceUseCase(probe port.DeviceProbe, keyboard port.KeyboardStatusProbe) *CheckDeviceUseCase {
	return &CheckDeviceUseCase{probe: probe, keyboard: keyboard}
}

// CheckDeviceInput contains options for the device checks.
type CheckDeviceInput struct {
	// Serial is the configured device. Empty requires exactly one attached device.
	Serial string
	// MinToolVersion defaults to defaultMinToolVersion.
	MinToolVersion string
}

// CheckDeviceOutput contains the result of the device checks.
type CheckDeviceOutput struct {
	OK     bool
	Checks []DeviceCheckStatus
}

// Execute checks the adb tool, the target device and the soft keyboard probe.
// Later checks are skipped once an earlier one fails.
func (uc *CheckDeviceUseCase) Execute(ctx context.Context, input CheckDeviceInput) (*CheckDeviceOutput, error) {
	log := logging.FromContext(ctx).With().Str("component", "device-check").Logger()

	minTool := input.MinToolVersion
	if minTool == "" {
		minTool = defaultMinToolVersion
	}

	out := &CheckDeviceOutput{OK: true}
	add := func(s DeviceCheckStatus) bool {
		out.Checks = append(out.Checks, s)
		if !s.OK {
			out.OK = false
		}
		return s.OK
	}

	if !add(uc.checkTool(ctx, minTool)) {
		log.Debug().Bool("ok", false).Msg("device check stopped at tool")
		return out, nil
	}
	if !add(uc.checkDevice(ctx, input.Serial)) {
		log.Debug().Bool("ok", false).Msg("device check stopped at device")
		return out, nil
	}
	if uc.keyboard != nil {
		add(uc.checkKeyboard(ctx))
	}

	log.Debug().Bool("ok", out.OK).Str("serial", input.Serial).Msg("device check complete")
	return out, nil
}

func (uc *CheckDeviceUseCase) checkTool(ctx context.Context, minVersion string) DeviceCheckStatus {
	status := DeviceCheckStatus{
		ID:              DeviceCheckTool,
		DisplayName:     "adb",
		RequiredVersion: minVersion,
	}

	version, err := uc.probe.ToolVersion(ctx)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.Found = true
	status.Detail = strings.TrimSpace(version)

	cmp, ok := compareVersion(status.Detail, minVersion)
	if !ok {
		status.Error = "could not parse version"
		return status
	}
	status.OK = cmp >= 0
	return status
}

func (uc *CheckDeviceUseCase) checkDevice(ctx context.Context, serial string) DeviceCheckStatus {
	status := DeviceCheckStatus{ID: DeviceCheckDevice, DisplayName: "Device"}

	devices, err := uc.probe.Devices(ctx)
	if err != nil {
		status.Error = err.Error()
		return status
	}

	var usable []port.AttachedDevice
	for _, d := range devices {
		if serial != "" && d.Serial != serial {
			continue
		}
		if d.State != "device" {
			status.Found = true
			status.Detail = d.Serial
			status.Error = fmt.Sprintf("%s is %s", d.Serial, d.State)
			return status
		}
		usable = append(usable, d)
	}

	switch {
	case len(usable) == 0 && serial != "":
		status.Error = fmt.Sprintf("%s is not attached", serial)
	case len(usable) == 0:
		status.Error = "no device attached"
	case len(usable) > 1:
		status.Found = true
		status.Error = fmt.Sprintf("%d devices attached, set adb.serial", len(usable))
	default:
		status.Found = true
		status.Detail = usable[0].Serial
		status.OK = true
	}
	return status
}

func (uc *CheckDeviceUseCase) checkKeyboard(ctx context.Context) DeviceCheckStatus {
	status := DeviceCheckStatus{ID: DeviceCheckKeyboard, DisplayName: "Soft keyboard"}

	visible, err := uc.keyboard.SoftKeyboardVisible(ctx)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.Found = true
	status.OK = true
	status.Detail = "hidden"
	if visible {
		status.Detail = "shown"
	}
	return status
}

// compareVersion compares two version strings.
// Returns 1 if a > b, 0 if a == b, -1 if a < b. ok is false if either cannot be parsed.
func compareVersion(a, b string) (cmp int, ok bool) {
	av, ok := parseVersionPrefix(a)
	if !ok {
		return 0, false
	}
	bv, ok := parseVersionPrefix(b)
	if !ok {
		return 0, false
	}

	n := max(len(av), len(bv))
	for i := 0; i < n; i++ {
		x := 0
		if i < len(av) {
			x = av[i]
		}
		y := 0
		if i < len(bv) {
			y = bv[i]
		}
		switch {
		case x > y:
			return 1, true
		case x < y:
			return -1, true
		}
	}
	return 0, true
}

// parseVersionPrefix parses a dotted numeric version prefix (e.g. 1.0.41).
// It stops at the first non-digit/dot after a numeric segment.
func parseVersionPrefix(s string) ([]int, bool) {
	var parts []int
	cur := 0
	inNum := false

loop:
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			inNum = true
			cur = cur*10 + int(c-'0')
		case c == '.':
			if !inNum {
				return nil, false
			}
			parts = append(parts, cur)
			cur = 0
			inNum = false
		default:
			break loop
		}
	}

	if inNum {
		parts = append(parts, cur)
	}
	if len(parts) == 0 {
		return nil, false
	}
	return parts, true
}
