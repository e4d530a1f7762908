package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type DoctorRenderer struct {
	theme *Theme
}

func NewDoctorRenderer(theme *Theme) *DoctorRenderer {
	return &DoctorRenderer{theme: theme}
}

type DoctorReport struct {
	OK     bool
	Serial string
	Checks []DoctorCheck
}

type DoctorCheck struct {
	Name            string
	Found           bool
	Detail          string
	RequiredVersion string
	OK              bool
	Error           string
}

func (r *DoctorRenderer) Render(report DoctorReport) string {
	header := r.renderHeader(report.OK)

	lines := make([]string, 0, len(report.Checks)+1)
	if strings.TrimSpace(report.Serial) != "" {
		lines = append(lines, fmt.Sprintf(
			"%s %s %s",
			r.theme.Subtle.Render("Serial"),
			r.theme.Normal.Render(report.Serial),
			r.theme.Subtle.Render("(device.serial)"),
		))
	}
	for _, c := range report.Checks {
		lines = append(lines, r.renderCheck(c))
	}

	box := r.theme.Box.Render(
		r.theme.BoxHeader.Render(fmt.Sprintf("%s Device", r.theme.Highlight.Render(IconMobile))) +
			"\n" + strings.Join(lines, "\n"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", box)
}

func (r *DoctorRenderer) renderHeader(ok bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	statusStyle := r.theme.SuccessStyle
	statusText := "OK"
	if !ok {
		statusStyle = r.theme.WarningStyle
		statusText = "Needs attention"
	}

	title := fmt.Sprintf("%s %s", iconStyle.Render(IconMobile), r.theme.Title.Render("Doctor"))
	badge := r.theme.BadgeMuted.Render(statusStyle.Render(statusText))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", badge)
}

func (r *DoctorRenderer) renderCheck(c DoctorCheck) string {
	icon := IconCheck
	statusStyle := r.theme.SuccessStyle
	status := "OK"

	var summary string
	switch {
	case !c.Found:
		icon = IconX
		statusStyle = r.theme.ErrorStyle
		status = "Missing"
		summary = c.Error
	case !c.OK && c.Error == "" && c.RequiredVersion != "":
		icon = IconWarning
		statusStyle = r.theme.WarningStyle
		status = "Too old"
		summary = fmt.Sprintf("have %s, need >= %s", c.Detail, c.RequiredVersion)
	case !c.OK:
		icon = IconWarning
		statusStyle = r.theme.WarningStyle
		status = "Unusable"
		summary = c.Error
	case c.RequiredVersion != "":
		summary = fmt.Sprintf("%s (>= %s)", c.Detail, c.RequiredVersion)
	default:
		summary = c.Detail
	}

	name := r.theme.Normal.Render(c.Name)
	badge := r.theme.BadgeMuted.Render(statusStyle.Render(status))
	info := r.theme.Subtle.Render(summary)

	return fmt.Sprintf("%s %s %s\n  %s", statusStyle.Render(icon), name, badge, info)
}
