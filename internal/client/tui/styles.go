// Package tui renders the adboard terminal dashboard with bubbletea.
// Pages mirror the client's three surfaces: login, the campaign metric
// dashboard, and the media reel viewer.
package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles shared by all pages.
type Styles struct {
	App       lipgloss.Style
	Title     lipgloss.Style
	Help      lipgloss.Style
	ErrBanner lipgloss.Style
	Status    lipgloss.Style

	Card      lipgloss.Style
	CardLabel lipgloss.Style
	CardValue lipgloss.Style

	FieldLabel   lipgloss.Style
	FieldFocused lipgloss.Style

	Overlay lipgloss.Style
	Denied  lipgloss.Style
}

// DefaultStyles builds the default color scheme.
func DefaultStyles() Styles {
	var (
		primary = lipgloss.Color("#7D56F4")
		muted   = lipgloss.Color("240")
		danger  = lipgloss.Color("#E53935")
		warn    = lipgloss.Color("#FFC107")
		border  = lipgloss.Color("238")
	)

	return Styles{
		App:       lipgloss.NewStyle().Padding(1, 2),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1),
		Help:      lipgloss.NewStyle().Foreground(muted),
		ErrBanner: lipgloss.NewStyle().Foreground(danger).Bold(true),
		Status:    lipgloss.NewStyle().Foreground(muted).Italic(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 2).
			MarginRight(1),
		CardLabel: lipgloss.NewStyle().Foreground(muted),
		CardValue: lipgloss.NewStyle().Bold(true),

		FieldLabel:   lipgloss.NewStyle().Foreground(muted).Width(14),
		FieldFocused: lipgloss.NewStyle().Foreground(primary),

		Overlay: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(primary).
			Padding(1, 3),
		Denied: lipgloss.NewStyle().Foreground(warn).Bold(true),
	}
}
