package adb

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectLines(c *ShellChannel) <-chan string {
	lines := make(chan string, 16)
	c.SetOutputHandler(func(stream, line string) {
		if stream == "stdout" {
			lines <- line
		}
	})
	return lines
}

func waitLine(t *testing.T, lines <-chan string) string {
	t.Helper()
	select {
	case line := <-lines:
		return line
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for shell output")
		return ""
	}
}

func TestShellChannel_WriteBeforeConnect(t *testing.T) {
	c := newShellChannel("cat", nil, false)

	assert.False(t, c.IsAlive())
	assert.ErrorIs(t, c.WriteLine(context.Background(), "input tap 1 1"), ErrNotConnected)
	assert.NoError(t, c.Close())
}

func TestShellChannel_WritesOneLinePerCommand(t *testing.T) {
	c := newShellChannel("cat", nil, false)
	lines := collectLines(c)
	ctx := context.Background()

	require.NoError(t, c.Connect(ctx))
	t.Cleanup(func() { _ = c.Close() })
	require.True(t, c.IsAlive())

	require.NoError(t, c.WriteLine(ctx, "input keyevent KEYCODE_BACK"))
	require.NoError(t, c.WriteLine(ctx, "input -d 2 tap 10 20"))

	assert.Equal(t, "input keyevent KEYCODE_BACK", waitLine(t, lines))
	assert.Equal(t, "input -d 2 tap 10 20", waitLine(t, lines))
}

func TestShellChannel_ConnectIsNoOpWhileAlive(t *testing.T) {
	c := newShellChannel("cat", nil, false)
	ctx := context.Background()

	require.NoError(t, c.Connect(ctx))
	t.Cleanup(func() { _ = c.Close() })
	pid := pidOf(c.cmd)

	require.NoError(t, c.Connect(ctx))
	assert.Equal(t, pid, pidOf(c.cmd))
}

func TestShellChannel_DetectsExitedProcess(t *testing.T) {
	c := newShellChannel("head", []string{"-n", "1"}, false)
	ctx := context.Background()

	require.NoError(t, c.Connect(ctx))
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.WriteLine(ctx, "input keyevent KEYCODE_HOME"))
	assert.Eventually(t, func() bool { return !c.IsAlive() }, 2*time.Second, 10*time.Millisecond)
	assert.ErrorIs(t, c.WriteLine(ctx, "input keyevent KEYCODE_HOME"), ErrNotConnected)

	// reconnect starts a fresh process
	require.NoError(t, c.Connect(ctx))
	assert.True(t, c.IsAlive())
}

func TestShellChannel_WriteTimesOutWhenShellStalls(t *testing.T) {
	// sleep never reads stdin, so a write larger than the pipe buffer blocks
	c := newShellChannel("sleep", []string{"30"}, false)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.WriteLine(ctx, strings.Repeat("x", 1<<20))
	assert.ErrorIs(t, err, ErrWriteTimeout)

	require.NoError(t, c.Close())
	assert.False(t, c.IsAlive())
}

func TestShellChannel_CloseDoesNotWaitForStuckShell(t *testing.T) {
	// ignores SIGINT and never reads stdin, so only the kill ends it
	c := newShellChannel("sh", []string{"-c", "trap '' INT; sleep 30"}, false)
	require.NoError(t, c.Connect(context.Background()))
	exited := c.exited

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.WriteLine(ctx, strings.Repeat("x", 200<<10)), ErrWriteTimeout)

	start := time.Now()
	require.NoError(t, c.Close())
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.False(t, c.IsAlive())

	select {
	case <-exited:
	case <-time.After(2 * closeGrace):
		t.Fatal("stuck shell was never killed")
	}
}

func TestShellChannel_ReconnectsWhileOldShellStops(t *testing.T) {
	c := newShellChannel("sh", []string{"-c", "trap '' INT; cat"}, false)
	lines := collectLines(c)
	ctx := context.Background()

	require.NoError(t, c.Connect(ctx))
	require.NoError(t, c.Close())

	require.NoError(t, c.Connect(ctx))
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.WriteLine(ctx, "input keyevent KEYCODE_BACK"))
	assert.Equal(t, "input keyevent KEYCODE_BACK", waitLine(t, lines))
}

func TestShellChannel_CloseIsIdempotent(t *testing.T) {
	c := newShellChannel("cat", nil, false)
	require.NoError(t, c.Connect(context.Background()))

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.False(t, c.IsAlive())
}

func TestNewShellChannel_UsesOptions(t *testing.T) {
	c := NewShellChannel(Options{Path: "/opt/android/adb", Serial: "emulator-5554", UsePTY: true})

	assert.Equal(t, "/opt/android/adb", c.name)
	assert.Equal(t, []string{"-s", "emulator-5554", "shell"}, c.args)
	assert.True(t, c.pty)
}
