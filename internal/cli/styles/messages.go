package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// RenderError renders an error message.
func (t *Theme) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(t.Error)
	return fmt.Sprintf("  %s %s", iconStyle.Render(IconX), t.ErrorStyle.Render(err.Error()))
}

// RenderWarning renders a warning message.
func (t *Theme) RenderWarning(msg string) string {
	iconStyle := lipgloss.NewStyle().Foreground(t.Warning)
	return fmt.Sprintf("  %s %s", iconStyle.Render(IconWarning), t.WarningStyle.Render(msg))
}

// RenderInfo renders an informational line with a label and a value.
func (t *Theme) RenderInfo(icon, label, value string) string {
	iconStyle := lipgloss.NewStyle().Foreground(t.Accent)
	return fmt.Sprintf("  %s %s %s", iconStyle.Render(icon), label, t.Subtle.Render(value))
}

// RenderHelpLine renders key bindings as "key desc · key desc".
func (t *Theme) RenderHelpLine(pairs ...[2]string) string {
	out := ""
	for i, p := range pairs {
		if i > 0 {
			out += t.Subtle.Render(" · ")
		}
		out += t.HelpKey.Render(p[0]) + " " + t.HelpDesc.Render(p[1])
	}
	return out
}
