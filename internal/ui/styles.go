// Package ui provides consistent styling for the waytype CLI
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette - consistent across the application
var (
	ColorPrimary = lipgloss.Color("39")  // Bright blue
	ColorSuccess = lipgloss.Color("82")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorInfo    = lipgloss.Color("86")  // Cyan
	ColorText    = lipgloss.Color("252") // Light gray
	ColorSubtle  = lipgloss.Color("241") // Medium gray
)

// Base styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	KeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)
)

// FormatSetting renders a "key = value" line
func FormatSetting(key, value string) string {
	if value == "" {
		value = SubtleStyle.Render("(default)")
	} else {
		value = ValueStyle.Render(value)
	}
	return "  " + KeyStyle.Render(key) + " = " + value
}
