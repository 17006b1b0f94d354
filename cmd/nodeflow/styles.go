package main

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#7C3AED")
	accent  = lipgloss.Color("#10B981")
	muted   = lipgloss.Color("#6B7280")
	white   = lipgloss.Color("#FFFFFF")
	failure = lipgloss.Color("#EF4444")
)

var (
	statusBar   = lipgloss.NewStyle().Background(lipgloss.Color("#1F2937")).Foreground(white).Padding(0, 1)
	statusMode  = lipgloss.NewStyle().Background(primary).Foreground(white).Padding(0, 1).MarginRight(1)
	statusText  = lipgloss.NewStyle().Foreground(muted)
	statusError = lipgloss.NewStyle().Foreground(failure)
	statusInfo  = lipgloss.NewStyle().Foreground(accent)

	dialog       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primary).Padding(1, 2)
	dialogTitle  = lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1)
	inputLabel   = lipgloss.NewStyle().Foreground(accent).Bold(true)
	inputFocused = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(primary)
	inputBlurred = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(muted)

	helpKey  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	helpDesc = lipgloss.NewStyle().Foreground(muted)
)
