// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package wizard

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/cos-it/enrollhelper/internal/enroll"
)

type keyMap struct {
	Next      key.Binding
	Back      key.Binding
	NextFld   key.Binding
	PrevFld   key.Binding
	Up        key.Binding
	Down      key.Binding
	Clear     key.Binding
	Copy      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "shift+left"),
			key.WithHelp("esc", "back"),
		),
		NextFld: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevFld: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "choose"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
		),
		Clear: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "clear"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy output"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// bindingsFor returns the help footer bindings for a screen.
func (k keyMap) bindingsFor(state enroll.State, failed bool) []key.Binding {
	switch state {
	case enroll.StateAcknowledge:
		return []key.Binding{k.Next, k.Quit}
	case enroll.StateNameInput:
		return []key.Binding{k.NextFld, k.Next, k.Back, k.ForceQuit}
	case enroll.StateDepartmentBuildingInput:
		return []key.Binding{k.Up, k.Clear, k.NextFld, k.Next, k.Back, k.ForceQuit}
	case enroll.StateConfirm:
		return []key.Binding{k.Next, k.Back, k.ForceQuit}
	case enroll.StateDone:
		if failed {
			return []key.Binding{k.Copy, k.Quit}
		}
		return []key.Binding{k.Quit}
	}
	return nil
}
