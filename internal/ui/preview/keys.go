// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package preview

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the preview key bindings.
type KeyMap struct {
	ToggleDark key.Binding
	Sync       key.Binding
	Metric     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ToggleDark: key.NewBinding(
			key.WithKeys("d", "t"),
			key.WithHelp("d", "toggle dark"),
		),
		Sync: key.NewBinding(
			key.WithKeys("c", "r"),
			key.WithHelp("c", "re-sync classes"),
		),
		Metric: key.NewBinding(
			key.WithKeys("m", "tab"),
			key.WithHelp("m", "next metric"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the one-line help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleDark, k.Metric, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleDark, k.Sync, k.Metric},
		{k.Help, k.Quit},
	}
}
