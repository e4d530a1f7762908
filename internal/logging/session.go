package logging

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const logFilePerm = 0o600

// GenerateSessionID creates a unique session identifier.
// Format: YYYYMMDD_HHMMSS_xxxx (timestamp + 4 random hex chars)
func GenerateSessionID() string {
	random := make([]byte, 2)
	_, _ = rand.Read(random)
	return time.Now().Format("20060102_150405") + "_" + hex.EncodeToString(random)
}

// SessionFilename generates the log filename for a session ID.
// Example: "20251217_205106_a7b3" -> "session_20251217_205106_a7b3.log"
func SessionFilename(sessionID string) string {
	return "session_" + sessionID + ".log"
}

// ShortSessionID returns the random suffix of a session ID.
// Example: "20251217_205106_a7b3" -> "a7b3"
func ShortSessionID(sessionID string) string {
	if len(sessionID) < 4 {
		return sessionID
	}
	return sessionID[len(sessionID)-4:]
}

// ParseSessionFilename extracts the session ID from a log filename.
func ParseSessionFilename(filename string) (string, bool) {
	const prefix, suffix = "session_", ".log"
	if !strings.HasPrefix(filename, prefix) || !strings.HasSuffix(filename, suffix) ||
		len(filename) <= len(prefix)+len(suffix) {
		return "", false
	}
	return filename[len(prefix) : len(filename)-len(suffix)], true
}

// FileConfig selects where a session logger writes.
type FileConfig struct {
	Enabled       bool
	LogDir        string
	SessionID     string
	WriteToStderr bool
}

// NewWithFile creates a logger writing to a per-session file in LogDir and,
// optionally, to stderr. The returned cleanup closes the file. The file is
// always JSON so it stays greppable.
func NewWithFile(cfg Config, fc FileConfig) (zerolog.Logger, func(), error) {
	if !fc.Enabled {
		out := io.Discard
		if fc.WriteToStderr {
			out = os.Stderr
		}
		return NewWithWriter(cfg, out), func() {}, nil
	}

	if err := os.MkdirAll(fc.LogDir, 0o755); err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("create log dir: %w", err)
	}
	id := fc.SessionID
	if id == "" {
		id = GenerateSessionID()
	}
	path := filepath.Join(fc.LogDir, SessionFilename(id))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
	}

	writers := []io.Writer{file}
	if fc.WriteToStderr {
		var stderr io.Writer = os.Stderr
		if cfg.Format == "console" {
			stderr = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: cfg.TimeFormat}
		}
		writers = append(writers, stderr)
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(cfg.Level).
		With().
		Timestamp().
		Str("session", id).
		Logger()
	return logger, func() { _ = file.Close() }, nil
}
