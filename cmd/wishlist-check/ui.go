package main

import (
	"github.com/berckan/domainwishlist/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	purple = lipgloss.Color("99")
	green  = lipgloss.Color("76")
	red    = lipgloss.Color("204")
	yellow = lipgloss.Color("214")
	faint  = lipgloss.Color("238")
)

var (
	availableStyle = lipgloss.NewStyle().Foreground(green)
	takenStyle     = lipgloss.NewStyle().Foreground(red)
	pendingStyle   = lipgloss.NewStyle().Foreground(yellow)
)

func statusText(s models.AvailabilityStatus) string {
	switch s {
	case models.StatusAvailable:
		return availableStyle.Render(string(s))
	case models.StatusUnavailable:
		return takenStyle.Render(string(s))
	default:
		return pendingStyle.Render(string(s))
	}
}

// renderTable renders a rounded table with a bold header row.
func renderTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(purple).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(faint)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}
