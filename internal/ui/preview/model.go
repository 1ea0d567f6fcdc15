// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package preview

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cipherchart/internal/canvas"
	"github.com/jeranaias/cipherchart/internal/chartstyle"
	"github.com/jeranaias/cipherchart/internal/dom"
	"github.com/jeranaias/cipherchart/internal/results"
)

// ThemeChangedMsg carries a published theme context into the update loop.
type ThemeChangedMsg struct {
	Defaults   chartstyle.Defaults
	Recomputes uint64
}

// Model is the preview bubbletea model.
type Model struct {
	doc    *dom.Document
	styler *chartstyle.Styler

	// updates holds at most the latest unseen publish.
	updates chan ThemeChangedMsg
	cancel  func()

	theme      chartstyle.Defaults
	recomputes uint64
	results    []results.Result
	metric     canvas.Metric

	keys     KeyMap
	help     help.Model
	width    int
	showHelp bool
	quitting bool
}

// New creates a preview over doc. The model subscribes to styler right away;
// call Close when the program exits.
func New(doc *dom.Document, styler *chartstyle.Styler, rs []results.Result, metric canvas.Metric) Model {
	if metric == "" {
		metric = canvas.MetricOverall
	}
	m := Model{
		doc:        doc,
		styler:     styler,
		updates:    make(chan ThemeChangedMsg, 1),
		theme:      styler.Defaults(),
		recomputes: styler.Recomputes(),
		results:    results.SortedByScore(rs),
		metric:     metric,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		width:      80,
	}

	updates := m.updates
	m.cancel = styler.Subscribe(func(d chartstyle.Defaults) {
		msg := ThemeChangedMsg{Defaults: d, Recomputes: styler.Recomputes()}
		// Publishes are serialized, so after the drain the send cannot block.
		select {
		case <-updates:
		default:
		}
		updates <- msg
	})
	return m
}

// Init starts listening for theme publishes.
func (m Model) Init() tea.Cmd {
	return waitForTheme(m.updates)
}

func waitForTheme(ch <-chan ThemeChangedMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// Update handles key presses and theme publishes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ThemeChangedMsg:
		m.theme = msg.Defaults
		m.recomputes = msg.Recomputes
		return m, waitForTheme(m.updates)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleDark):
			m.doc.Root().ClassList().Toggle(dom.DarkClass)
		case key.Matches(msg, m.keys.Sync):
			// Rewriting the same value still notifies observers.
			root := m.doc.Root()
			v, _ := root.Attribute(dom.ClassAttribute)
			root.SetAttribute(dom.ClassAttribute, v)
		case key.Matches(msg, m.keys.Metric):
			m.metric = nextMetric(m.metric)
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
		}
	}
	return m, nil
}

// Close cancels the styler subscription. It is safe to call more than once.
func (m Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

// Theme returns the theme context the model last received.
func (m Model) Theme() chartstyle.Defaults { return m.theme }

// Metric returns the metric currently shown.
func (m Model) Metric() canvas.Metric { return m.metric }

func nextMetric(cur canvas.Metric) canvas.Metric {
	all := canvas.Metrics()
	for i, mt := range all {
		if mt == cur {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}
