package components

import (
	"strings"

	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var pillIcons = map[string]string{
	"check":      "✓",
	"clock":      "◷",
	"alert":      "!",
	"calendar":   "▦",
	"arrow-up":   "↑",
	"arrow-down": "↓",
}

// PillLabel is the text of a filter option, with its icon glyph when the
// option carries one.
func PillLabel(o model.FilterOption) string {
	switch o.Kind {
	case model.FilterLabeledValue:
		if glyph, ok := pillIcons[o.Icon]; ok {
			return glyph + " " + o.Label
		}
		return o.Label
	default:
		return o.Label
	}
}

// FilterPills renders a row of options, highlighting the one whose Key
// equals selected. hotkey is shown before the row when non-empty.
func FilterPills(hotkey string, options []model.FilterOption, selected string) string {
	t := theme.Active

	on := lipgloss.NewStyle().Foreground(t.Background).Background(t.Accent).Bold(true)
	off := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.SurfaceHover)
	gap := lipgloss.NewStyle().Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	if hotkey != "" {
		b.WriteString(keyStyle.Render("[" + hotkey + "] "))
	}
	for i, o := range options {
		if i > 0 {
			b.WriteString(gap.Render(" "))
		}
		label := " " + PillLabel(o) + " "
		if o.Key() == selected {
			b.WriteString(on.Render(label))
		} else {
			b.WriteString(off.Render(label))
		}
	}
	return b.String()
}

// NextOption returns the key following current in options, wrapping
// around. An unknown current selects the first option.
func NextOption(options []model.FilterOption, current string) string {
	if len(options) == 0 {
		return current
	}
	for i, o := range options {
		if o.Key() == current {
			return options[(i+1)%len(options)].Key()
		}
	}
	return options[0].Key()
}
