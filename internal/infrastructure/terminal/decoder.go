// Package terminal drives the overlay from a terminal: raw key and SGR mouse
// input are decoded into key codes and pointer events, and the terminal
// window stands in for the embedded mirror window.
package terminal

import (
	"bytes"
	"strconv"

	"github.com/bnema/tapmap/internal/domain/entity"
)

const esc = 0x1b

// EventKind tells key input from mouse input.
type EventKind int

const (
	EventKey EventKind = iota
	EventMouse
)

// MouseAction is the phase of a mouse report.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseMotion
	MouseRelease
)

// Mouse is a decoded SGR mouse report. Col and Row are zero-based cells.
type Mouse struct {
	Action MouseAction
	Button int
	Col    int
	Row    int
}

// Event is one decoded input.
type Event struct {
	Kind EventKind
	// Keys are the key presses in order: modifiers first, then the main key.
	Keys []entity.KeyCode
	// Ctrl is the lower-case letter of a Ctrl-<letter> chord, 0 otherwise.
	Ctrl  byte
	Mouse Mouse
}

// Main returns the last key of a key event.
func (e Event) Main() entity.KeyCode {
	if len(e.Keys) == 0 {
		return 0
	}
	return e.Keys[len(e.Keys)-1]
}

var escapeSequences = map[string]entity.KeyCode{
	"[A":  entity.KeyUp,
	"[B":  entity.KeyDown,
	"[C":  entity.KeyRight,
	"[D":  entity.KeyLeft,
	"OA":  entity.KeyUp,
	"OB":  entity.KeyDown,
	"OC":  entity.KeyRight,
	"OD":  entity.KeyLeft,
	"[H":  entity.KeyHome,
	"[F":  entity.KeyEnd,
	"[1~": entity.KeyHome,
	"[4~": entity.KeyEnd,
	"[2~": entity.KeyInsert,
	"[3~": entity.KeyDelete,
	"[5~": entity.KeyPageUp,
	"[6~": entity.KeyPageDown,
	"OP":  entity.KeyF1,
	"OQ":  entity.KeyF1 + 1,
	"OR":  entity.KeyF1 + 2,
	"OS":  entity.KeyF1 + 3,
}

// Decode splits buf into events. An incomplete escape sequence at the end is
// returned as rest so the caller can prepend it to the next read. A lone ESC
// at the end of buf is kept in rest too: it may start a sequence split across
// reads. Flush resolves rest once no more input follows.
func Decode(buf []byte) (events []Event, rest []byte) {
	for len(buf) > 0 {
		ev, n, ok := decodeOne(buf)
		if n == 0 {
			return events, buf
		}
		if ok {
			events = append(events, ev)
		}
		buf = buf[n:]
	}
	return events, nil
}

// Flush decodes input left over by Decode when nothing followed it in time.
// A leading ESC becomes the Escape key and the remaining bytes are decoded on
// their own.
func Flush(rest []byte) []Event {
	var events []Event
	for len(rest) > 0 {
		decoded, remaining := Decode(rest)
		events = append(events, decoded...)
		if len(remaining) == 0 {
			break
		}
		events = append(events, keyEvent(entity.KeyEscape))
		rest = remaining[1:]
	}
	return events
}

// decodeOne decodes the event at the start of buf. n is the bytes consumed,
// 0 when more input is needed. ok is false for consumed but ignored input.
func decodeOne(buf []byte) (ev Event, n int, ok bool) {
	b := buf[0]
	if b != esc {
		return decodeByte(b), 1, true
	}

	if len(buf) == 1 {
		return Event{}, 0, false
	}

	switch buf[1] {
	case '[':
		if len(buf) > 2 && buf[2] == '<' {
			return decodeSGRMouse(buf)
		}
		return decodeSequence(buf)
	case 'O':
		if len(buf) < 3 {
			return Event{}, 0, false
		}
		if code, known := escapeSequences[string(buf[1:3])]; known {
			return keyEvent(code), 3, true
		}
		return Event{}, 3, false
	case esc:
		// double escape: the first one is a key on its own
		return keyEvent(entity.KeyEscape), 1, true
	default:
		// ESC prefix is how terminals send Alt+key
		inner := decodeByte(buf[1])
		inner.Keys = append([]entity.KeyCode{entity.KeyAlt}, inner.Keys...)
		return inner, 2, true
	}
}

// decodeSequence handles CSI sequences ending in a letter or '~'.
func decodeSequence(buf []byte) (Event, int, bool) {
	for i := 2; i < len(buf); i++ {
		c := buf[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '~' {
			seq := string(buf[1 : i+1])
			if code, known := escapeSequences[seq]; known {
				return keyEvent(code), i + 1, true
			}
			return Event{}, i + 1, false
		}
	}
	return Event{}, 0, false
}

// decodeSGRMouse parses ESC [ < button ; col ; row (M|m), 1-based cells.
func decodeSGRMouse(buf []byte) (Event, int, bool) {
	end := bytes.IndexAny(buf, "Mm")
	if end < 0 {
		return Event{}, 0, false
	}
	fields := bytes.Split(buf[3:end], []byte(";"))
	if len(fields) != 3 {
		return Event{}, end + 1, false
	}
	var nums [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(string(f))
		if err != nil {
			return Event{}, end + 1, false
		}
		nums[i] = v
	}

	code := nums[0]
	if code&64 != 0 {
		// wheel
		return Event{}, end + 1, false
	}
	m := Mouse{
		Button: code & 3,
		Col:    nums[1] - 1,
		Row:    nums[2] - 1,
	}
	switch {
	case buf[end] == 'm':
		m.Action = MouseRelease
	case code&32 != 0:
		m.Action = MouseMotion
	default:
		m.Action = MousePress
	}
	return Event{Kind: EventMouse, Mouse: m}, end + 1, true
}

func decodeByte(b byte) Event {
	switch {
	case b == '\r' || b == '\n':
		return keyEvent(entity.KeyReturn)
	case b == '\t':
		return keyEvent(entity.KeyTab)
	case b == 0x7f || b == 0x08:
		return keyEvent(entity.KeyBackspace)
	case b >= 0x01 && b <= 0x1a:
		letter := 'a' + b - 1
		ev := keyEvent(entity.KeyControl, entity.KeyCode('A'+b-1))
		ev.Ctrl = letter
		return ev
	case b >= 'a' && b <= 'z':
		return keyEvent(entity.KeyCode(b - 'a' + 'A'))
	case b >= 'A' && b <= 'Z':
		return keyEvent(entity.KeyShift, entity.KeyCode(b))
	default:
		return keyEvent(entity.KeyCode(b))
	}
}

func keyEvent(keys ...entity.KeyCode) Event {
	return Event{Kind: EventKey, Keys: keys}
}
