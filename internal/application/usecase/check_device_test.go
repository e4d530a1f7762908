package usecase_test

import (
	"errors"
	"testing"

	"github.com/bnema/tapmap/internal/application/port"
	portmocks "github.com/bnema/tapmap/internal/application/port/mocks"
	"github.com/bnema/tapmap/internal/application/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckDevice_AllChecksPass(t *testing.T) {
	probe := portmocks.NewMockDeviceProbe(t)
	probe.EXPECT().ToolVersion(mock.Anything).Return("1.0.41\n", nil)
	probe.EXPECT().Devices(mock.Anything).Return([]port.AttachedDevice{
		{Serial: "R58M123", State: "device"},
	}, nil)
	keyboard := portmocks.NewMockKeyboardStatusProbe(t)
	keyboard.EXPECT().SoftKeyboardVisible(mock.Anything).Return(true, nil)

	out, err := usecase.NewCheckDeviceUseCase(probe, keyboard).
		Execute(testContext(), usecase.CheckDeviceInput{})

	require.NoError(t, err)
	assert.True(t, out.OK)
	require.Len(t, out.Checks, 3)
	assert.Equal(t, "1.0.41", out.Checks[0].Detail)
	assert.Equal(t, "R58M123", out.Checks[1].Detail)
	assert.Equal(t, "shown", out.Checks[2].Detail)
}

func TestCheckDevice_MissingToolStopsEarly(t *testing.T) {
	probe := portmocks.NewMockDeviceProbe(t)
	probe.EXPECT().ToolVersion(mock.Anything).Return("", &port.DeviceProbeError{
		Kind: port.DeviceProbeErrorKindToolMissing,
		Err:  port.ErrToolMissing,
	})

	out, err := usecase.NewCheckDeviceUseCase(probe, nil).
		Execute(testContext(), usecase.CheckDeviceInput{})

	require.NoError(t, err)
	assert.False(t, out.OK)
	require.Len(t, out.Checks, 1)
	assert.False(t, out.Checks[0].Found)
	assert.Contains(t, out.Checks[0].Error, "tool_missing")
}

func TestCheckDevice_OldToolFails(t *testing.T) {
	probe := portmocks.NewMockDeviceProbe(t)
	probe.EXPECT().ToolVersion(mock.Anything).Return("1.0.31", nil)

	out, err := usecase.NewCheckDeviceUseCase(probe, nil).
		Execute(testContext(), usecase.CheckDeviceInput{})

	require.NoError(t, err)
	assert.False(t, out.OK)
	assert.True(t, out.Checks[0].Found)
	assert.Equal(t, "1.0.39", out.Checks[0].RequiredVersion)
}

func TestCheckDevice_DeviceSelection(t *testing.T) {
	attached := []port.AttachedDevice{
		{Serial: "R58M123", State: "device"},
		{Serial: "192.168.1.20:5555", State: "device"},
		{Serial: "emulator-5554", State: "unauthorized"},
	}

	tests := []struct {
		name    string
		serial  string
		devices []port.AttachedDevice
		ok      bool
		errPart string
	}{
		{name: "configured serial", serial: "192.168.1.20:5555", devices: attached, ok: true},
		{name: "unauthorized serial", serial: "emulator-5554", devices: attached, errPart: "unauthorized"},
		{name: "absent serial", serial: "nope", devices: attached, errPart: "not attached"},
		{name: "ambiguous", devices: attached[:2], errPart: "2 devices"},
		{name: "none", devices: nil, errPart: "no device"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := portmocks.NewMockDeviceProbe(t)
			probe.EXPECT().ToolVersion(mock.Anything).Return("1.0.41", nil)
			probe.EXPECT().Devices(mock.Anything).Return(tt.devices, nil)

			out, err := usecase.NewCheckDeviceUseCase(probe, nil).
				Execute(testContext(), usecase.CheckDeviceInput{Serial: tt.serial})

			require.NoError(t, err)
			assert.Equal(t, tt.ok, out.OK)
			require.Len(t, out.Checks, 2)
			if tt.errPart != "" {
				assert.Contains(t, out.Checks[1].Error, tt.errPart)
			}
		})
	}
}

func TestCheckDevice_KeyboardProbeFailure(t *testing.T) {
	probe := portmocks.NewMockDeviceProbe(t)
	probe.EXPECT().ToolVersion(mock.Anything).Return("1.0.41", nil)
	probe.EXPECT().Devices(mock.Anything).Return([]port.AttachedDevice{{Serial: "a", State: "device"}}, nil)
	keyboard := portmocks.NewMockKeyboardStatusProbe(t)
	keyboard.EXPECT().SoftKeyboardVisible(mock.Anything).Return(false, errors.New("mInputShown not present"))

	out, err := usecase.NewCheckDeviceUseCase(probe, keyboard).
		Execute(testContext(), usecase.CheckDeviceInput{})

	require.NoError(t, err)
	assert.False(t, out.OK)
	assert.Contains(t, out.Checks[2].Error, "mInputShown")
}
