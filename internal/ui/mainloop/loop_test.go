package mainloop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLoop(t *testing.T, l *Loop) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()
	return cancel, errCh
}

func TestLoopRunsPostedTasksInOrder(t *testing.T) {
	l := NewLoop(8, time.Hour)
	cancel, errCh := runLoop(t, l)
	defer cancel()

	got := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		v := i
		require.True(t, l.Post(func() { got <- v }))
	}

	for want := 1; want <= 3; want++ {
		select {
		case v := <-got:
			assert.Equal(t, want, v)
		case <-time.After(time.Second):
			t.Fatal("task did not run")
		}
	}

	cancel()
	require.NoError(t, <-errCh)
	assert.False(t, l.Post(func() {}), "post after stop must be refused")
}

func TestLoopDrainsWatchedStatusToLatestValue(t *testing.T) {
	l := NewLoop(8, 5*time.Millisecond)
	status := make(chan bool, 4)
	status <- true
	status <- false
	status <- true

	var calls atomic.Int32
	seen := make(chan bool, 4)
	l.Watch(status, func(v bool) {
		calls.Add(1)
		seen <- v
	})

	cancel, errCh := runLoop(t, l)
	defer cancel()

	select {
	case v := <-seen:
		assert.True(t, v)
	case <-time.After(time.Second):
		t.Fatal("status not delivered")
	}

	cancel()
	require.NoError(t, <-errCh)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLoopFeedsCoalescer(t *testing.T) {
	l := NewLoop(8, time.Hour)
	c := NewCoalescer(func(fn func()) { l.Post(fn) })

	var runs atomic.Int32
	for i := 0; i < 10; i++ {
		c.Post("overlay-geometry", func() { runs.Add(1) })
	}

	cancel, errCh := runLoop(t, l)
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, time.Millisecond)
	assert.False(t, c.Pending("overlay-geometry"))

	cancel()
	require.NoError(t, <-errCh)
	assert.Equal(t, int32(1), runs.Load())
}

func TestLoopStopsOnTaskPanic(t *testing.T) {
	l := NewLoop(8, time.Hour)
	cancel, errCh := runLoop(t, l)
	defer cancel()

	require.True(t, l.Post(func() { panic("boom") }))

	select {
	case err := <-errCh:
		var perr *PanicError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "boom", perr.Value)
		assert.NotEmpty(t, perr.Stack)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after panic")
	}
	assert.False(t, l.Post(func() {}), "a stopped loop rejects tasks")
}
