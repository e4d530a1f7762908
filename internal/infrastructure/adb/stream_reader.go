package adb

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

const defaultQueueSize = 512

// StreamReader drains a process output stream on its own goroutine into a
// bounded queue, so readers never block on the process. When the queue is
// full the oldest line is dropped.
type StreamReader struct {
	lines   chan string
	done    chan struct{}
	dropped atomic.Int64

	mu  sync.Mutex
	err error
}

// NewStreamReader starts reading r. The goroutine exits at EOF or on a read error.
func NewStreamReader(r io.Reader, queueSize int) *StreamReader {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	s := &StreamReader{
		lines: make(chan string, queueSize),
		done:  make(chan struct{}),
	}
	go s.pump(r)
	return s
}

func (s *StreamReader) pump(r io.Reader) {
	defer close(s.done)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		s.push(line)
	}

	s.mu.Lock()
	s.err = scanner.Err()
	s.mu.Unlock()
}

func (s *StreamReader) push(line string) {
	for {
		select {
		case s.lines <- line:
			return
		default:
		}
		select {
		case <-s.lines:
			s.dropped.Add(1)
		default:
		}
	}
}

// ReadLine returns the next queued line without blocking.
func (s *StreamReader) ReadLine() (string, bool) {
	select {
	case line := <-s.lines:
		return line, true
	default:
		return "", false
	}
}

// WaitLine blocks until a line is available, the stream ends or ctx is done.
// It returns io.EOF once the stream ended and the queue is drained.
func (s *StreamReader) WaitLine(ctx context.Context) (string, error) {
	select {
	case line := <-s.lines:
		return line, nil
	default:
	}

	select {
	case line := <-s.lines:
		return line, nil
	case <-s.done:
		// lines queued just before EOF
		if line, ok := s.ReadLine(); ok {
			return line, nil
		}
		if err := s.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Done is closed when the underlying stream ended.
func (s *StreamReader) Done() <-chan struct{} { return s.done }

// Err returns the read error that ended the stream, if any.
func (s *StreamReader) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Dropped returns how many lines were discarded because the queue was full.
func (s *StreamReader) Dropped() int64 { return s.dropped.Load() }
