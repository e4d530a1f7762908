package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// CrashRow is one line of the crash listing.
type CrashRow struct {
	ID          string
	GeneratedAt string
	Panic       string
}

// CrashRenderer renders crash report listings and bodies.
type CrashRenderer struct {
	theme *Theme
}

// NewCrashRenderer creates a new crash renderer with the given theme.
func NewCrashRenderer(theme *Theme) *CrashRenderer {
	return &CrashRenderer{theme: theme}
}

// RenderList renders the reports newest first.
func (r *CrashRenderer) RenderList(dir string, rows []CrashRow) string {
	iconStyle := r.theme.WarningStyle
	title := fmt.Sprintf("%s %s %s",
		iconStyle.Render(IconWarning),
		r.theme.Title.Render("Crash reports"),
		r.theme.Subtle.Render(fmt.Sprintf("(%d)", len(rows))),
	)

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{row.ID, row.GeneratedAt, truncate(row.Panic, 60)})
	}
	table := NewStyledTable(r.theme, []string{"ID", "Generated", "Panic"}, cells)

	return title + "\n" + table.Render() + "\n" + r.theme.RenderInfo(IconFolder, "Directory", dir)
}

// RenderMarkdown renders md for a terminal of the given width. The raw text is
// returned when the renderer cannot be built.
func (r *CrashRenderer) RenderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 100
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n") + "\n"
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
