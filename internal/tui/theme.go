package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name    string
	Border  lipgloss.Color
	Header  lipgloss.Style
	Input   lipgloss.Style
	Focused lipgloss.Style
	Dim     lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:    "Default",
		Border:  lipgloss.Color("63"),
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Align(lipgloss.Center),
		Input:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Focused: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
	},
	"dracula": {
		Name:    "Dracula",
		Border:  lipgloss.Color("62"),                                                                   // Purple
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true).Align(lipgloss.Center), // Cyan
		Input:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),                                  // White
		Focused: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),                       // Pink
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("60")),                                   // Comment
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),                       // Red
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true),                       // Orange
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Bold(true),                       // Green
	},
}

// CurrentTheme holds the currently active theme.
var CurrentTheme = Themes["default"]

func SetTheme(name string) {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
	}
}
