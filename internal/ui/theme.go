package ui

import "github.com/charmbracelet/lipgloss"

type uiTheme struct {
	header      lipgloss.Style
	panel       lipgloss.Style
	panelFocus  lipgloss.Style
	panelTitle  lipgloss.Style
	footer      lipgloss.Style
	status      lipgloss.Style
	errorStatus lipgloss.Style
	muted       lipgloss.Style
	value       lipgloss.Style
	warn        lipgloss.Style
	urgent      lipgloss.Style
	cursorLine  lipgloss.Style
	menuOption  lipgloss.Style
	menuSelect  lipgloss.Style
	menuFrame   lipgloss.Style
	modal       lipgloss.Style
	sender      map[string]lipgloss.Style
}

func newTheme() uiTheme {
	blue := lipgloss.Color("#01cdfe")
	mint := lipgloss.Color("#05ffa1")
	pink := lipgloss.Color("#ff71ce")
	amber := lipgloss.Color("#ffd166")
	text := lipgloss.Color("#f3f3ff")
	muted := lipgloss.Color("#9ca3d8")
	panelBg := lipgloss.Color("#1b0f35")

	return uiTheme{
		header: lipgloss.NewStyle().
			Background(panelBg).
			Foreground(text).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(0, 1),
		panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		panelFocus: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mint).
			Padding(0, 1),
		panelTitle: lipgloss.NewStyle().Foreground(mint).Bold(true),
		footer: lipgloss.NewStyle().
			Background(panelBg).
			Foreground(muted).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(pink).
			Padding(0, 1),
		status:      lipgloss.NewStyle().Foreground(blue).Bold(true),
		errorStatus: lipgloss.NewStyle().Foreground(pink).Bold(true),
		muted:       lipgloss.NewStyle().Foreground(muted),
		value:       lipgloss.NewStyle().Foreground(text),
		warn:        lipgloss.NewStyle().Foreground(amber),
		urgent:      lipgloss.NewStyle().Foreground(pink).Bold(true),
		cursorLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("#22062f")).Background(mint),
		menuOption:  lipgloss.NewStyle().Foreground(text),
		menuSelect: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22062f")).
			Background(pink).
			Bold(true).
			Padding(0, 1),
		menuFrame: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(pink).
			Padding(1, 2),
		modal: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(amber).
			Padding(1, 2),
		sender: map[string]lipgloss.Style{
			senderCustomer: lipgloss.NewStyle().Foreground(mint).Bold(true),
			senderAgent:    lipgloss.NewStyle().Foreground(blue).Bold(true),
			senderAI:       lipgloss.NewStyle().Foreground(pink).Bold(true),
		},
	}
}
