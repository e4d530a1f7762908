package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/bnema/tapmap/internal/logging"
)

const (
	// any-event mouse tracking with SGR extended coordinates
	mouseOn  = "\x1b[?1003h\x1b[?1006h"
	mouseOff = "\x1b[?1006l\x1b[?1003l"
)

// Session owns the terminal while the headless driver runs: raw mode, mouse
// reporting and the input reader.
type Session struct {
	in  *os.File
	out io.Writer

	mu       sync.Mutex
	oldState *term.State
}

// NewSession creates a session on in (usually os.Stdin) writing control
// sequences to out.
func NewSession(in *os.File, out io.Writer) *Session {
	return &Session{in: in, out: out}
}

// IsTerminal reports whether the input is an interactive terminal.
func (s *Session) IsTerminal() bool {
	return term.IsTerminal(int(s.in.Fd()))
}

// Enter switches the input to raw mode and enables mouse reporting.
func (s *Session) Enter() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := term.MakeRaw(int(s.in.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	s.oldState = state
	_, _ = io.WriteString(s.out, mouseOn)
	return nil
}

// Restore disables mouse reporting and restores the previous terminal mode.
// It is safe to call more than once.
func (s *Session) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.oldState == nil {
		return nil
	}
	_, _ = io.WriteString(s.out, mouseOff)
	if err := term.Restore(int(s.in.Fd()), s.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	s.oldState = nil
	return nil
}

// escapeTimeout is how long a trailing ESC waits for the rest of a sequence
// before it is taken as the Escape key.
const escapeTimeout = 25 * time.Millisecond

type chunk struct {
	data []byte
	err  error
}

// ReadEvents decodes input from r and sends events on out until r ends or
// ctx is done. Reads block, so the reader goroutine ends on the next input
// after cancellation.
func ReadEvents(ctx context.Context, r io.Reader, out chan<- Event) error {
	log := logging.FromContext(ctx)
	chunks := make(chan chunk)
	go readChunks(ctx, r, chunks)

	var (
		pending []byte
		timeout <-chan time.Time
	)
	emit := func(events []Event) bool {
		for _, ev := range events {
			select {
			case out <- ev:
			case <-ctx.Done():
				return false
			}
		}
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-timeout:
			timeout = nil
			events := Flush(pending)
			pending = nil
			if !emit(events) {
				return nil
			}

		case c := <-chunks:
			if len(c.data) > 0 {
				var events []Event
				events, pending = Decode(append(pending, c.data...))
				if !emit(events) {
					return nil
				}
			}
			timeout = nil
			if len(pending) > 0 {
				timeout = time.After(escapeTimeout)
			}

			if c.err == nil {
				continue
			}
			if len(pending) > 0 && !emit(Flush(pending)) {
				return nil
			}
			if errors.Is(c.err, io.EOF) {
				log.Debug().Msg("terminal input closed")
				return nil
			}
			return fmt.Errorf("read terminal input: %w", c.err)
		}
	}
}

func readChunks(ctx context.Context, r io.Reader, chunks chan<- chunk) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		c := chunk{data: append([]byte(nil), buf[:n]...), err: err}
		select {
		case chunks <- c:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}
