package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// NewStyledTable creates a themed, non-interactive table.
func NewStyledTable(theme *Theme, headers []string, rows [][]string) *table.Table {
	headerStyle := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().
		Foreground(theme.Text).
		Padding(0, 1)
	oddStyle := cellStyle.Foreground(theme.Muted)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 1:
				return oddStyle
			default:
				return cellStyle
			}
		})
}
