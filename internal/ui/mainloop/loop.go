package mainloop

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/bnema/tapmap/internal/logging"
)

const (
	defaultQueueSize = 256
	defaultTick      = 50 * time.Millisecond
)

// Loop is the single goroutine that owns overlay state. Other goroutines hand
// work to it with Post; background status signals are read from channels and
// drained once per tick.
type Loop struct {
	tasks chan func()
	tick  time.Duration

	mu       sync.Mutex
	watches  []statusWatch
	done     chan struct{}
	stopOnce sync.Once
}

// PanicError is returned by Run when a task or watch callback panicked. The
// loop stops at the first panic since overlay state may be inconsistent.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("main loop task panicked: %v", e.Value)
}

type statusWatch struct {
	ch <-chan bool
	fn func(bool)
}

// NewLoop creates a loop. Zero values select the defaults.
func NewLoop(queueSize int, tick time.Duration) *Loop {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if tick <= 0 {
		tick = defaultTick
	}
	return &Loop{
		tasks: make(chan func(), queueSize),
		tick:  tick,
		done:  make(chan struct{}),
	}
}

// Post queues fn to run on the loop goroutine. It is safe to call from any
// goroutine and returns false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Watch registers fn to receive values from ch on the loop goroutine. Values
// that arrive between two ticks are collapsed to the latest one.
func (l *Loop) Watch(ch <-chan bool, fn func(bool)) {
	if ch == nil || fn == nil {
		return
	}
	l.mu.Lock()
	l.watches = append(l.watches, statusWatch{ch: ch, fn: fn})
	l.mu.Unlock()
}

// Run processes tasks until ctx is done or a task panics.
func (l *Loop) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()
	defer l.stop()

	log.Debug().Dur("tick", l.tick).Msg("main loop started")
	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("main loop stopped")
			return nil
		case fn := <-l.tasks:
			if err := safely(fn); err != nil {
				log.Error().Err(err).Msg("main loop task panicked")
				return err
			}
		case <-ticker.C:
			if err := safely(l.drainWatches); err != nil {
				log.Error().Err(err).Msg("main loop watch panicked")
				return err
			}
		}
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

func (l *Loop) drainWatches() {
	l.mu.Lock()
	watches := l.watches
	l.mu.Unlock()

	for _, w := range watches {
		var (
			latest bool
			got    bool
		)
	drain:
		for {
			select {
			case v, ok := <-w.ch:
				if !ok {
					break drain
				}
				latest, got = v, true
			default:
				break drain
			}
		}
		if got {
			w.fn(latest)
		}
	}
}

func safely(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	fn()
	return nil
}

func (l *Loop) stop() {
	l.stopOnce.Do(func() { close(l.done) })
}
