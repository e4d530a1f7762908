package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	portmocks "github.com/bnema/tapmap/internal/application/port/mocks"
	"github.com/bnema/tapmap/internal/application/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCommandDispatcher_ConnectsLazilyAndReusesChannel(t *testing.T) {
	ctx := testContext()
	ch := portmocks.NewMockNativeChannel(t)

	ch.EXPECT().IsAlive().Return(false).Once()
	ch.EXPECT().Connect(mock.Anything).Return(nil).Once()
	ch.EXPECT().IsAlive().Return(true).Times(2)
	ch.EXPECT().WriteLine(mock.Anything, "input -d 7 tap 10 20").Return(nil).Once()
	ch.EXPECT().WriteLine(mock.Anything, "input -d 7 tap 30 40").Return(nil).Once()
	ch.EXPECT().WriteLine(mock.Anything, "input keyevent KEYCODE_BACK").Return(nil).Once()

	d := usecase.NewCommandDispatcher(ch, time.Second)
	d.SetDisplayID(7)

	require.NoError(t, d.Tap(ctx, 10, 20))
	require.NoError(t, d.Tap(ctx, 30, 40))
	require.NoError(t, d.KeyEvent(ctx, "KEYCODE_BACK"))
}

func TestCommandDispatcher_WriteFailureInvalidatesAndNextCommandReconnects(t *testing.T) {
	ctx := testContext()
	ch := portmocks.NewMockNativeChannel(t)
	d := usecase.NewCommandDispatcher(ch, time.Second)
	d.SetDisplayID(1)

	ch.EXPECT().IsAlive().Return(true).Once()
	ch.EXPECT().WriteLine(mock.Anything, "input -d 1 tap 1 1").Return(errors.New("broken pipe")).Once()
	ch.EXPECT().Close().Return(nil).Once()

	err := d.Tap(ctx, 1, 1)
	require.ErrorIs(t, err, usecase.ErrChannelDisconnected)

	ch.EXPECT().IsAlive().Return(false).Once()
	ch.EXPECT().Connect(mock.Anything).Return(nil).Once()
	ch.EXPECT().WriteLine(mock.Anything, "input -d 1 tap 2 2").Return(nil).Once()

	require.NoError(t, d.Tap(ctx, 2, 2))
}

func TestCommandDispatcher_ConnectFailureIsReported(t *testing.T) {
	ctx := testContext()
	ch := portmocks.NewMockNativeChannel(t)
	ch.EXPECT().IsAlive().Return(false)
	ch.EXPECT().Connect(mock.Anything).Return(errors.New("adb: not found"))

	d := usecase.NewCommandDispatcher(ch, 0)
	err := d.KeyEvent(ctx, "KEYCODE_HOME")
	require.ErrorIs(t, err, usecase.ErrChannelDisconnected)
	assert.Contains(t, err.Error(), "adb: not found")
}

func TestCommandDispatcher_DisplayCommandsNeedDisplayID(t *testing.T) {
	ctx := testContext()
	ch := portmocks.NewMockNativeChannel(t)

	d := usecase.NewCommandDispatcher(ch, time.Second)
	_, known := d.DisplayID()
	assert.False(t, known)

	err := d.Hold(ctx, 5, 5, 100*time.Millisecond)
	assert.ErrorIs(t, err, usecase.ErrNoDisplayID)
}

func TestCommandDispatcher_WriteIsBounded(t *testing.T) {
	ctx := testContext()
	ch := portmocks.NewMockNativeChannel(t)
	d := usecase.NewCommandDispatcher(ch, 20*time.Millisecond)
	d.SetDisplayID(2)

	ch.EXPECT().IsAlive().Return(true)
	ch.EXPECT().WriteLine(mock.Anything, "input -d 2 swipe 0 0 100 100 300").
		RunAndReturn(func(wctx context.Context, _ string) error {
			deadline, ok := wctx.Deadline()
			require.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(20*time.Millisecond), deadline, 20*time.Millisecond)
			return nil
		})

	require.NoError(t, d.Swipe(ctx, 0, 0, 100, 100, 300*time.Millisecond))
}
