package tui

import (
	"fmt"
	"strings"

	"github.com/akyairhashvil/payg-unlock/internal/config"
	"github.com/akyairhashvil/payg-unlock/internal/unlock"
	"github.com/akyairhashvil/payg-unlock/internal/util"
	"github.com/charmbracelet/lipgloss"
)

func renderLogo() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true).Render("PAY") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true).Render("G")
}

func lockBoxWidth(termWidth int) int {
	if termWidth <= 0 {
		return config.LockBoxWidth
	}
	return util.Clamp(termWidth-4, config.MinLockBoxWidth, config.LockBoxWidth)
}

func (m LockModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	v := m.sink.view
	width := lockBoxWidth(m.width)
	line := func(style lipgloss.Style, text string) string {
		return style.Render(truncateLabel(text, width)) + "\n"
	}

	var content strings.Builder
	title := "Locked"
	if v.Status == unlock.StatusSucceeded {
		title = "Unlocked"
	}
	content.WriteString(CurrentTheme.Focused.Render(fmt.Sprintf("%s | %s v%s", title, renderLogo(), versionLabel())) + "\n\n")

	switch {
	case !v.Ready:
		content.WriteString(line(CurrentTheme.Dim, "Loading entitlement..."))
	case v.Status == unlock.StatusSucceeded:
		content.WriteString(line(CurrentTheme.Success, "Code accepted."))
		content.WriteString(line(CurrentTheme.Dim, FormatCredit(v.TimeRemaining)))
	default:
		content.WriteString(line(CurrentTheme.Dim, FormatCredit(v.TimeRemaining)))
		content.WriteString(line(CurrentTheme.Dim, "Enter an unlock code to add credit."))
	}

	if v.Message != "" {
		style := CurrentTheme.Error
		if v.Status == unlock.StatusTooManyAttempts {
			style = CurrentTheme.Warning
		}
		content.WriteString("\n" + line(style, v.Message))
	}

	if v.Status != unlock.StatusSucceeded {
		prompt := CurrentTheme.Focused.Render("> ") + m.input.View()
		if m.spinning {
			prompt += " " + m.spinner.View() + CurrentTheme.Dim.Render(" Verifying...")
		}
		content.WriteString("\n" + prompt + "\n\n")
		content.WriteString(line(CurrentTheme.Dim, "[enter] verify  [esc] clear  [ctrl+c] quit"))
	}

	lockFrame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Border).
		Padding(1, 2).
		Width(width)
	lockBox := lockFrame.Render(strings.TrimRight(content.String(), "\n"))
	return "\x1b[H\x1b[2J" + lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, lockBox)
}
