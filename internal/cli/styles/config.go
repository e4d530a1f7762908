package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the config file location and whether it exists.
func (r *ConfigRenderer) RenderConfigInfo(path string, exists bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	status := r.theme.SuccessStyle.Render("present")
	if !exists {
		status = r.theme.WarningStyle.Render("missing, defaults in use")
	}
	return fmt.Sprintf("\n  %s Config %s\n    %s\n",
		iconStyle.Render(IconConfig),
		r.theme.Subtle.Render(path),
		status,
	)
}

// RenderCreated renders the message after writing a default config file.
func (r *ConfigRenderer) RenderCreated(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("  %s Wrote default config to %s",
		iconStyle.Render(IconCheck),
		r.theme.Highlight.Render(path),
	)
}

// RenderExists renders the refusal to overwrite an existing config file.
func (r *ConfigRenderer) RenderExists(path string) string {
	return r.theme.RenderWarning(fmt.Sprintf("%s already exists (use --force to overwrite)", path))
}
