package adb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/rs/zerolog"

	"github.com/bnema/tapmap/internal/application/port"
	"github.com/bnema/tapmap/internal/logging"
)

const closeGrace = 2 * time.Second

var (
	// ErrNotConnected is returned by WriteLine before Connect or after the
	// shell process exited.
	ErrNotConnected = errors.New("adb shell not connected")
	// ErrWriteTimeout is returned when a write did not complete in time.
	ErrWriteTimeout = errors.New("adb shell write timed out")
)

// OutputHandler receives every non-empty line the shell prints. stream is
// "stdout" or "stderr". It runs on the reader goroutine.
type OutputHandler func(stream, line string)

// ShellChannel is a long-lived `adb shell` process receiving one command per
// line on stdin. Its output is drained by background readers so the shell
// never stalls on a full pipe.
type ShellChannel struct {
	name    string
	args    []string
	pty     bool
	handler OutputHandler

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	exited chan struct{}
	logger zerolog.Logger
}

var _ port.NativeChannel = (*ShellChannel)(nil)

// NewShellChannel creates a channel for `adb [-s serial] shell`. Nothing is
// started until Connect.
func NewShellChannel(opts Options) *ShellChannel {
	return newShellChannel(opts.path(), opts.args("shell"), opts.UsePTY)
}

func newShellChannel(name string, args []string, usePTY bool) *ShellChannel {
	return &ShellChannel{
		name:   name,
		args:   args,
		pty:    usePTY,
		logger: zerolog.Nop(),
	}
}

// SetOutputHandler installs fn for processes started by later Connect calls.
func (c *ShellChannel) SetOutputHandler(fn OutputHandler) {
	c.mu.Lock()
	c.handler = fn
	c.mu.Unlock()
}

// Connect starts the shell process. It is a no-op while the current process
// is alive.
func (c *ShellChannel) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.aliveLocked() {
		return nil
	}
	c.teardownLocked()

	log := logging.FromContext(ctx).With().Str("component", "adb-shell").Logger()

	// not CommandContext: the shell must outlive the command that opened it
	cmd := exec.Command(c.name, c.args...)

	var (
		stdin   io.WriteCloser
		streams map[string]io.ReadCloser
		err     error
	)
	if c.pty {
		stdin, streams, err = startPTY(cmd)
	} else {
		stdin, streams, err = startPiped(cmd)
	}
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", c.name, err)
	}

	exited := make(chan struct{})
	c.cmd = cmd
	c.stdin = stdin
	c.exited = exited
	c.logger = log

	for name, r := range streams {
		go drain(r, name, c.handler, log)
	}
	go func() {
		err := cmd.Wait()
		log.Debug().Err(err).Int("pid", pidOf(cmd)).Msg("adb shell exited")
		close(exited)
	}()

	log.Info().Int("pid", pidOf(cmd)).Bool("pty", c.pty).Msg("adb shell started")
	return nil
}

// IsAlive reports whether the shell process is running.
func (c *ShellChannel) IsAlive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aliveLocked()
}

// WriteLine writes text followed by a newline. The write is abandoned when
// ctx is done first; the caller is expected to Close the channel then.
func (c *ShellChannel) WriteLine(ctx context.Context, text string) error {
	c.mu.Lock()
	if !c.aliveLocked() {
		c.mu.Unlock()
		return ErrNotConnected
	}
	stdin := c.stdin
	exited := c.exited
	c.mu.Unlock()

	result := make(chan error, 1)
	go func() {
		_, err := io.WriteString(stdin, text+"\n")
		result <- err
	}()

	select {
	case err := <-result:
		if err != nil {
			return fmt.Errorf("write to adb shell: %w", err)
		}
		return nil
	case <-exited:
		return ErrNotConnected
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrWriteTimeout, ctx.Err())
	}
}

// Close stops the shell process without waiting for it to exit. It is safe
// to call repeatedly.
func (c *ShellChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
	return nil
}

func (c *ShellChannel) aliveLocked() bool {
	if c.cmd == nil {
		return false
	}
	select {
	case <-c.exited:
		return false
	default:
		return true
	}
}

// teardownLocked detaches the current process and stops it in the
// background, so callers on the UI loop never wait for a stuck shell.
func (c *ShellChannel) teardownLocked() {
	if c.cmd == nil {
		return
	}
	cmd, stdin, exited, log := c.cmd, c.stdin, c.exited, c.logger
	c.cmd = nil
	c.stdin = nil
	c.exited = nil

	go stopProcess(cmd, stdin, exited, log)
}

func stopProcess(cmd *exec.Cmd, stdin io.Closer, exited <-chan struct{}, log zerolog.Logger) {
	// closing stdin ends a well-behaved shell on its own
	_ = stdin.Close()
	select {
	case <-exited:
	case <-time.After(closeGrace / 4):
		if cmd.Process != nil {
			_ = cmd.Process.Signal(os.Interrupt)
		}
		select {
		case <-exited:
		case <-time.After(closeGrace):
			if cmd.Process != nil {
				_ = cmd.Process.Kill()
			}
			<-exited
		}
	}
	log.Debug().Int("pid", pidOf(cmd)).Msg("adb shell closed")
}

func startPiped(cmd *exec.Cmd) (io.WriteCloser, map[string]io.ReadCloser, error) {
	inR, inW, err := os.Pipe()
	if err != nil {
		return nil, nil, err
	}
	outR, outW, err := os.Pipe()
	if err != nil {
		closeAll(inR, inW)
		return nil, nil, err
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		closeAll(inR, inW, outR, outW)
		return nil, nil, err
	}

	cmd.Stdin, cmd.Stdout, cmd.Stderr = inR, outW, errW
	if err := cmd.Start(); err != nil {
		closeAll(inR, inW, outR, outW, errR, errW)
		return nil, nil, err
	}
	// the child holds its own copies
	closeAll(inR, outW, errW)

	return inW, map[string]io.ReadCloser{"stdout": outR, "stderr": errR}, nil
}

func startPTY(cmd *exec.Cmd) (io.WriteCloser, map[string]io.ReadCloser, error) {
	f, err := pty.Start(cmd)
	if err != nil {
		return nil, nil, err
	}
	// the terminal merges stdout and stderr; reads on f end once f is closed
	return f, map[string]io.ReadCloser{"tty": io.NopCloser(f)}, nil
}

func drain(r io.ReadCloser, stream string, handler OutputHandler, log zerolog.Logger) {
	defer r.Close()

	reader := NewStreamReader(r, 0)
	ctx := context.Background()
	for {
		line, err := reader.WaitLine(ctx)
		if err != nil {
			if dropped := reader.Dropped(); dropped > 0 {
				log.Debug().Str("stream", stream).Int64("dropped", dropped).Msg("adb shell output overflowed")
			}
			return
		}
		if line == "" {
			continue
		}
		log.Debug().Str("stream", stream).Str("line", line).Msg("adb shell output")
		if handler != nil {
			handler(stream, line)
		}
	}
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}

func pidOf(cmd *exec.Cmd) int {
	if cmd.Process == nil {
		return 0
	}
	return cmd.Process.Pid
}
