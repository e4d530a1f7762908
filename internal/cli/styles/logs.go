package styles

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LogSessionRow is one line of the session log listing.
type LogSessionRow struct {
	ShortID  string
	Modified time.Time
	Size     int64
}

// LogRenderer renders session logs.
type LogRenderer struct {
	theme *Theme
}

// NewLogRenderer creates a new log renderer with the given theme.
func NewLogRenderer(theme *Theme) *LogRenderer {
	return &LogRenderer{theme: theme}
}

// RenderSessions lists session logs, newest first.
func (r *LogRenderer) RenderSessions(rows []LogSessionRow) string {
	if len(rows) == 0 {
		return r.theme.Subtle.Render("No sessions found. Run 'tapmap play' to create logs.")
	}

	var b strings.Builder
	b.WriteString(r.theme.Title.Render("Sessions (newest first):"))
	b.WriteString("\n\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "  %s  %s  %s\n",
			r.theme.Highlight.Render(row.ShortID),
			r.theme.Subtle.Render(row.Modified.Format(time.DateTime)),
			r.theme.Subtle.Render("("+FormatSize(row.Size)+")"),
		)
	}
	b.WriteString("\n")
	b.WriteString(r.theme.Subtle.Render("Use 'tapmap logs <id>' to view a session"))
	return b.String()
}

type logLine struct {
	Level     string `json:"level"`
	Time      string `json:"time"`
	Message   string `json:"message"`
	Component string `json:"component"`
}

// RenderLine colors one JSON log line by level. Lines that are not JSON are
// returned unchanged.
func (r *LogRenderer) RenderLine(line string) string {
	var entry logLine
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return line
	}

	ts := entry.Time
	if t, err := time.Parse(time.RFC3339, entry.Time); err == nil {
		ts = t.Local().Format(time.TimeOnly)
	}

	var level string
	switch entry.Level {
	case "error", "fatal", "panic":
		level = r.theme.ErrorStyle.Render("ERR")
	case "warn":
		level = r.theme.WarningStyle.Render("WRN")
	case "info":
		level = r.theme.Highlight.Render("INF")
	case "debug":
		level = r.theme.Subtle.Render("DBG")
	case "trace":
		level = r.theme.Subtle.Render("TRC")
	default:
		level = entry.Level
	}

	msg := entry.Message
	if entry.Component != "" {
		msg = r.theme.Subtle.Render(entry.Component+":") + " " + msg
	}
	return fmt.Sprintf("%s %s %s", r.theme.Subtle.Render(ts), level, msg)
}

// FormatSize renders a byte count in binary units.
func FormatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
