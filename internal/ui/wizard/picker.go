// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/cos-it/enrollhelper/internal/ui/styles"
)

// defaultPickerRows is the number of options shown while a picker is focused.
const defaultPickerRows = 6

// picker is a single-choice list with type-to-filter. An empty selection
// renders the placeholder.
type picker struct {
	placeholder string
	options     []string
	filtered    []string
	query       string
	cursor      int
	offset      int
	selected    string
	focused     bool
	rows        int
}

func newPicker(placeholder string, options []string) picker {
	p := picker{
		placeholder: placeholder,
		options:     options,
		rows:        defaultPickerRows,
	}
	p.refilter()
	return p
}

// Selected returns the chosen option, or "" when nothing is chosen.
func (p *picker) Selected() string { return p.selected }

// Highlighted returns the option under the cursor.
func (p *picker) Highlighted() (string, bool) {
	if p.cursor < 0 || p.cursor >= len(p.filtered) {
		return "", false
	}
	return p.filtered[p.cursor], true
}

func (p *picker) Focus() { p.focused = true }

func (p *picker) Blur() {
	p.focused = false
	p.query = ""
	p.refilter()
}

// Select chooses the highlighted option. It reports whether a choice was made.
func (p *picker) Select() bool {
	opt, ok := p.Highlighted()
	if !ok {
		return false
	}
	p.selected = opt
	return true
}

// Clear drops the selection so the placeholder shows again.
func (p *picker) Clear() { p.selected = "" }

// SetSelected chooses v if it is one of the options.
func (p *picker) SetSelected(v string) {
	for i, opt := range p.options {
		if opt == v {
			p.selected = v
			p.cursor = i
			p.scroll()
			return
		}
	}
}

// Update handles navigation and filter keys. Keys it does not use are left to
// the caller; it reports whether the key was consumed.
func (p *picker) Update(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp:
		if p.cursor > 0 {
			p.cursor--
			p.scroll()
		}
		return true
	case tea.KeyDown:
		if p.cursor < len(p.filtered)-1 {
			p.cursor++
			p.scroll()
		}
		return true
	case tea.KeyHome:
		p.cursor = 0
		p.scroll()
		return true
	case tea.KeyEnd:
		p.cursor = len(p.filtered) - 1
		p.scroll()
		return true
	case tea.KeyBackspace:
		if p.query == "" {
			return true
		}
		runes := []rune(p.query)
		p.query = string(runes[:len(runes)-1])
		p.refilter()
		return true
	case tea.KeySpace:
		if p.query == "" {
			return false
		}
		p.query += " "
		p.refilter()
		return true
	case tea.KeyRunes:
		p.query += string(msg.Runes)
		p.refilter()
		return true
	}
	return false
}

func (p *picker) refilter() {
	p.filtered = fuzzyFilter(p.query, p.options)
	p.cursor = 0
	p.offset = 0
	if p.query == "" && p.selected != "" {
		for i, opt := range p.filtered {
			if opt == p.selected {
				p.cursor = i
				break
			}
		}
	}
	p.scroll()
}

// scroll keeps the cursor inside the visible window.
func (p *picker) scroll() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+p.rows {
		p.offset = p.cursor - p.rows + 1
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

// View renders the picker. Collapsed it is one line; focused it lists the
// filtered options under a filter line.
func (p *picker) View(theme *styles.Theme, width int) string {
	if width < 10 {
		width = 10
	}
	var b strings.Builder

	marker := "  "
	if p.focused {
		marker = theme.Selected.Render("> ")
	}
	current := theme.Hint.Render(p.placeholder)
	if p.selected != "" {
		current = theme.Value.Render(runewidth.Truncate(p.selected, width-4, "…"))
	}
	b.WriteString(marker + current)

	if !p.focused {
		return b.String()
	}

	b.WriteString("\n")
	if p.query != "" {
		b.WriteString("    " + theme.Hint.Render("filter: ") + p.query + "\n")
	}
	if len(p.filtered) == 0 {
		b.WriteString("    " + theme.Warning.Render("no matches"))
		return b.String()
	}

	end := p.offset + p.rows
	if end > len(p.filtered) {
		end = len(p.filtered)
	}
	for i := p.offset; i < end; i++ {
		label := p.highlight(theme, runewidth.Truncate(p.filtered[i], width-6, "…"))
		if i == p.cursor {
			b.WriteString("    " + theme.Selected.Render("› ") + label)
		} else {
			b.WriteString("      " + label)
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if len(p.filtered) > p.rows {
		b.WriteString("\n    " + theme.Hint.Render(fmt.Sprintf("%d/%d", p.cursor+1, len(p.filtered))))
	}
	return b.String()
}

// highlight styles the runes of label that match the current filter.
func (p *picker) highlight(theme *styles.Theme, label string) string {
	positions := matchPositions(p.query, label)
	if len(positions) == 0 {
		return theme.Unselected.Render(label)
	}
	hit := make(map[int]bool, len(positions))
	for _, pos := range positions {
		hit[pos] = true
	}
	var b strings.Builder
	for i, r := range []rune(label) {
		if hit[i] {
			b.WriteString(theme.Match.Render(string(r)))
		} else {
			b.WriteString(theme.Unselected.Render(string(r)))
		}
	}
	return b.String()
}
