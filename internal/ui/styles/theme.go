// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styles used by the wizard views.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Panel    lipgloss.Style
	Banner   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Hint     lipgloss.Style

	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Match      lipgloss.Style

	ButtonActive   lipgloss.Style
	ButtonDisabled lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Spinner lipgloss.Style
	Output  lipgloss.Style
}

// NewTheme detects the terminal and builds the styles.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Red).
		MarginBottom(1)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Red).
		Padding(1, 2)

	t.Banner = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(RedDeep).
		Padding(1, 4).
		Align(lipgloss.Center)

	t.Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.Value = lipgloss.NewStyle().
		Foreground(Blue)

	t.Hint = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Selected = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	t.Unselected = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Match = lipgloss.NewStyle().
		Foreground(Blue).
		Underline(true)

	t.ButtonActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Red).
		Padding(0, 2)

	t.ButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 2)

	t.Success = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.Error = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.Warning = lipgloss.NewStyle().
		Foreground(Amber)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Blue)

	t.Output = lipgloss.NewStyle().
		Foreground(TextMuted).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Overlay).
		PaddingLeft(1)
}

// Button renders label as an enabled or disabled button.
func (t *Theme) Button(label string, enabled bool) string {
	if enabled {
		return t.ButtonActive.Render(label)
	}
	return t.ButtonDisabled.Render(label)
}

// PanelWidth clamps the panel width for a terminal of the given width.
func PanelWidth(termWidth int) int {
	w := termWidth - 16
	if w < 40 {
		w = 40
	}
	if w > 72 {
		w = 72
	}
	return w
}
