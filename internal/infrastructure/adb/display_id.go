package adb

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strconv"

	"github.com/bnema/tapmap/internal/logging"
)

// ErrDisplayIDNotFound is returned when a stream ended without announcing a display.
var ErrDisplayIDNotFound = errors.New("display id not found in output")

// scrcpy prints e.g. "INFO: New display: 1920x1080/320 (id=7)" when it
// creates a virtual display.
var displayIDPattern = regexp.MustCompile(`\(id=(\d+)\)`)

// ParseDisplayID extracts the display id from one line of mirroring tool output.
func ParseDisplayID(line string) (int, bool) {
	m := displayIDPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

// DetectDisplayID reads r until a line announces a display id.
func DetectDisplayID(ctx context.Context, r io.Reader) (int, error) {
	log := logging.FromContext(ctx)
	reader := NewStreamReader(r, 0)

	for {
		line, err := reader.WaitLine(ctx)
		if errors.Is(err, io.EOF) {
			return 0, ErrDisplayIDNotFound
		}
		if err != nil {
			return 0, err
		}
		if id, ok := ParseDisplayID(line); ok {
			log.Info().Int("display_id", id).Msg("display id detected")
			return id, nil
		}
	}
}
