package styles

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tapmap/internal/domain/entity"
)

// KeymapRenderer renders keymap listings.
type KeymapRenderer struct {
	theme *Theme
}

// NewKeymapRenderer creates a new keymap renderer with the given theme.
func NewKeymapRenderer(theme *Theme) *KeymapRenderer {
	return &KeymapRenderer{theme: theme}
}

// KeymapTableHeaders returns the column titles of RenderTable.
func KeymapTableHeaders() []string {
	return []string{"#", "Combo", "Shape", "Position", "Size", "Touch", "Mode"}
}

// KeymapRow converts one keymap to table cells. Touch is the native pixel
// the keymap taps.
func KeymapRow(index int, km *entity.Keymap, native entity.NativeSize) []string {
	x, y := km.NativeCenter(native)
	mode := "tap"
	if km.Hold {
		mode = "hold"
	}
	combo := km.DisplayLabel()
	if combo == "" {
		combo = "-"
	}
	return []string{
		strconv.Itoa(index),
		combo,
		string(km.ShapeKind()),
		fmt.Sprintf("%.3f, %.3f", km.Position.X, km.Position.Y),
		fmt.Sprintf("%.3f x %.3f", km.Size.X, km.Size.Y),
		fmt.Sprintf("%d, %d", x, y),
		mode,
	}
}

// RenderTable renders keymaps with their native touch points.
func (r *KeymapRenderer) RenderTable(profile string, keymaps []*entity.Keymap, native entity.NativeSize) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	header := fmt.Sprintf("\n  %s %s %s\n",
		iconStyle.Render(IconKeyboard),
		r.theme.Title.Render("Keymaps"),
		r.theme.MutedBadge(fmt.Sprintf("%s · %dx%d", profile, native.Width, native.Height)),
	)

	if len(keymaps) == 0 {
		return header + "\n  " + r.theme.Subtle.Render("No keymaps defined.") + "\n"
	}

	rows := make([][]string, 0, len(keymaps))
	for i, km := range keymaps {
		rows = append(rows, KeymapRow(i, km, native))
	}
	return header + NewStyledTable(r.theme, KeymapTableHeaders(), rows).String() + "\n"
}

// RenderProfiles renders stored profile names with their keymap counts. The
// active profile is highlighted.
func (r *KeymapRenderer) RenderProfiles(profiles map[string]int, active string) string {
	if len(profiles) == 0 {
		return "\n  " + r.theme.Subtle.Render("No profiles stored yet.") + "\n"
	}
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	var sb strings.Builder
	sb.WriteString("\n")
	for _, name := range names {
		nameStyle := r.theme.Normal
		marker := " "
		if name == active {
			nameStyle = r.theme.Highlight
			marker = iconStyle.Render(IconCursor)
		}
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			marker,
			nameStyle.Render(name),
			r.theme.Subtle.Render(fmt.Sprintf("(%d keymaps)", profiles[name])),
		))
	}
	return sb.String()
}

// RenderSuccess renders a confirmation line.
func (r *KeymapRenderer) RenderSuccess(msg string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("  %s %s", iconStyle.Render(IconCheck), msg)
}

// RenderPreview renders where a preview frame was written.
func (r *KeymapRenderer) RenderPreview(path string, width, height int) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("  %s Preview %s %s",
		iconStyle.Render(IconImage),
		r.theme.Subtle.Render(path),
		r.theme.MutedBadge(fmt.Sprintf("%dx%d", width, height)),
	)
}
