package entity

import "fmt"

// CommandKind identifies a device input command.
type CommandKind int

const (
	CommandKeyEvent CommandKind = iota
	CommandTap
	CommandSwipe
)

// String returns a human-readable command kind.
func (k CommandKind) String() string {
	switch k {
	case CommandKeyEvent:
		return "keyevent"
	case CommandTap:
		return "tap"
	case CommandSwipe:
		return "swipe"
	default:
		return "unknown"
	}
}

// Android key event codes sent through `input keyevent`.
const (
	KeyEventBack = "KEYCODE_BACK"
	KeyEventHome = "KEYCODE_HOME"
)

// Command is a single device input command in device-native pixel space.
type Command struct {
	Kind      CommandKind
	DisplayID int
	Code      string // keyevent only
	X1, Y1    int
	X2, Y2    int // swipe only
	Duration  int // swipe duration in milliseconds
}

// KeyEventCommand builds an `input keyevent` command.
func KeyEventCommand(code string) Command {
	return Command{Kind: CommandKeyEvent, Code: code}
}

// TapCommand builds an `input tap` command on a display.
func TapCommand(displayID, x, y int) Command {
	return Command{Kind: CommandTap, DisplayID: displayID, X1: x, Y1: y}
}

// SwipeCommand builds an `input swipe` command on a display.
func SwipeCommand(displayID, x1, y1, x2, y2, durationMs int) Command {
	return Command{
		Kind:      CommandSwipe,
		DisplayID: displayID,
		X1:        x1,
		Y1:        y1,
		X2:        x2,
		Y2:        y2,
		Duration:  durationMs,
	}
}

// HoldCommand emulates press-and-hold as a zero-distance swipe.
func HoldCommand(displayID, x, y, durationMs int) Command {
	return SwipeCommand(displayID, x, y, x, y, durationMs)
}

// NeedsDisplay reports whether the command targets a specific display.
func (c Command) NeedsDisplay() bool {
	return c.Kind == CommandTap || c.Kind == CommandSwipe
}

// String renders the command as one shell line without the trailing newline.
func (c Command) String() string {
	switch c.Kind {
	case CommandKeyEvent:
		return fmt.Sprintf("input keyevent %s", c.Code)
	case CommandTap:
		return fmt.Sprintf("input -d %d tap %d %d", c.DisplayID, c.X1, c.Y1)
	case CommandSwipe:
		return fmt.Sprintf("input -d %d swipe %d %d %d %d %d",
			c.DisplayID, c.X1, c.Y1, c.X2, c.Y2, c.Duration)
	default:
		return ""
	}
}
