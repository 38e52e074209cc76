package components

import (
	"strings"

	"github.com/theirongolddev/finboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is what the bottom bar reports about the data source.
type StatusInfo struct {
	Backend     string
	DataAge     string
	Error       string
	Refreshing  bool
	AutoRefresh bool
}

// RenderStatusBar renders the bottom status bar: key hints on the left,
// backend state on the right.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	liveStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)

	left := hintStyle.Render(" ") +
		keyStyle.Render("?") + hintStyle.Render(" help  ") +
		keyStyle.Render("a") + hintStyle.Render(" add  ") +
		keyStyle.Render("r") + hintStyle.Render(" refresh  ") +
		keyStyle.Render("q") + hintStyle.Render(" quit")

	var parts []string
	if info.Error != "" {
		parts = append(parts, errStyle.Render("! "+info.Error))
	}
	if info.Refreshing {
		parts = append(parts, liveStyle.Render("refreshing…"))
	} else if info.AutoRefresh {
		parts = append(parts, liveStyle.Render("● auto"))
	}
	if info.Backend != "" {
		parts = append(parts, dimStyle.Render(info.Backend))
	}
	if info.DataAge != "" {
		parts = append(parts, dimStyle.Render(info.DataAge))
	}
	right := strings.Join(parts, dimStyle.Render(" │ ")) + barStyle.Render(" ")

	// Drop the error first when the bar overflows.
	if lipgloss.Width(left)+lipgloss.Width(right) > width && info.Error != "" {
		info.Error = ""
		return RenderStatusBar(width, info)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return left + barStyle.Render(strings.Repeat(" ", padding)) + right
}
