// Package views renders the storefront pages for the terminal.
package views

import "github.com/charmbracelet/lipgloss"

var (
	Dark        = lipgloss.Color("#212529")
	Light       = lipgloss.Color("#f8f9fa")
	Success     = lipgloss.Color("#28a745")
	Danger      = lipgloss.Color("#dc3545")
	InfoColor   = lipgloss.Color("#17a2b8")
	WarningTone = lipgloss.Color("#ffc107")
	Muted       = lipgloss.Color("#6c757d")
)

type Styles struct {
	Title       lipgloss.Style
	Description lipgloss.Style
	Body        lipgloss.Style
	Footer      lipgloss.Style
	Card        lipgloss.Style
	CardHeader  lipgloss.Style
	Price       lipgloss.Style
	Hint        lipgloss.Style
	Alert       lipgloss.Style
	Error       lipgloss.Style
	Label       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(Light).Background(Dark).Padding(0, 2),
		Description: lipgloss.NewStyle().Italic(true).Foreground(Muted),
		Body:        lipgloss.NewStyle().Padding(1, 2),
		Footer:      lipgloss.NewStyle().Foreground(Light).Background(Success).Padding(0, 2),
		Card:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(InfoColor).Padding(0, 1),
		CardHeader:  lipgloss.NewStyle().Bold(true),
		Price:       lipgloss.NewStyle().Foreground(Success).Bold(true),
		Hint:        lipgloss.NewStyle().Foreground(Muted),
		Alert:       lipgloss.NewStyle().Foreground(Success).Border(lipgloss.NormalBorder()).BorderForeground(Success).Padding(0, 1),
		Error:       lipgloss.NewStyle().Foreground(Danger).Border(lipgloss.NormalBorder()).BorderForeground(Danger).Padding(0, 1),
		Label:       lipgloss.NewStyle().Foreground(WarningTone),
	}
}

var styles = DefaultStyles()
