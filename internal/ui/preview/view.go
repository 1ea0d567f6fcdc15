// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cipherchart/internal/chartstyle"
	"github.com/jeranaias/cipherchart/internal/results"
	"github.com/jeranaias/cipherchart/internal/util"
)

const (
	nameWidth   = 10
	minBarWidth = 10
)

// View renders the preview.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	t := m.theme
	text := lipgloss.Color(t.TextColor)
	border := lipgloss.Color(t.BorderColor)

	title := lipgloss.NewStyle().Bold(true).Foreground(text).
		Render(fmt.Sprintf("Chart theme: %s", strings.ToUpper(t.Mode())))

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n\n")
	sb.WriteString(Swatches(t))
	sb.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	sb.WriteString(box.Render(m.renderBars()))
	sb.WriteString("\n")
	sb.WriteString(ScoreLegend())
	sb.WriteString("\n\n")

	muted := lipgloss.NewStyle().Foreground(text).Faint(true)
	sb.WriteString(muted.Render(fmt.Sprintf("recomputes: %d", m.recomputes)))
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) renderBars() string {
	header := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.TextColor)).Bold(true).
		Render(m.metric.Title())

	if len(m.results) == 0 {
		return header + "\n" + "No results"
	}

	maxV := 0.0
	for _, r := range m.results {
		if v := m.metric.Value(r); v > maxV {
			maxV = v
		}
	}
	if m.metric.IsScore() && maxV < 1 {
		maxV = 1
	}

	barWidth := m.width - nameWidth - 20
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	lines := []string{header}
	for _, r := range m.results {
		lines = append(lines, m.renderBar(r, maxV, barWidth))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderBar(r results.Result, maxV float64, width int) string {
	v := m.metric.Value(r)
	n := 0
	if maxV > 0 && v > 0 {
		n = int(v / maxV * float64(width))
	}
	if n > width {
		n = width
	}

	fill := chartstyle.Flatten(chartstyle.AlgorithmColor(r.Algorithm, chartstyle.KindBackground), m.theme.CanvasColor)
	if m.metric.IsScore() {
		fill = chartstyle.ScoreColor(v)
	}

	name := lipgloss.NewStyle().Width(nameWidth).Foreground(lipgloss.Color(m.theme.TextColor)).
		Render(util.TruncateRunes(r.Algorithm, nameWidth))
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(fill)).Render(strings.Repeat("█", n))
	pad := strings.Repeat(" ", width-n)

	return fmt.Sprintf("%s %s%s %s", name, bar, pad, chartstyle.FormatNumberPrec(v, 4))
}

// Swatches renders one colored block per theme color.
func Swatches(t chartstyle.Defaults) string {
	entries := []struct {
		label, color string
	}{
		{"text", t.TextColor},
		{"border", t.BorderColor},
		{"canvas", t.CanvasColor},
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		block := lipgloss.NewStyle().Background(lipgloss.Color(e.color)).Render("    ")
		parts = append(parts, fmt.Sprintf("%s %s %s", block, e.label, e.color))
	}
	return strings.Join(parts, "   ")
}

// ScoreLegend renders the three score bands in their colors.
func ScoreLegend() string {
	bands := []struct {
		label string
		score float64
	}{
		{fmt.Sprintf("high >= %.1f", chartstyle.ScoreHighThreshold), chartstyle.ScoreHighThreshold},
		{fmt.Sprintf("medium >= %.1f", chartstyle.ScoreMediumThreshold), chartstyle.ScoreMediumThreshold},
		{"low", 0},
	}

	parts := make([]string, 0, len(bands))
	for _, b := range bands {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(chartstyle.ScoreColor(b.score))).Render("● "+b.label))
	}
	return strings.Join(parts, "  ")
}

// AlgorithmSwatches renders the palette entry for each known algorithm,
// flattened over the canvas color of t.
func AlgorithmSwatches(t chartstyle.Defaults) string {
	var lines []string
	for _, name := range chartstyle.Algorithms() {
		bg := chartstyle.AlgorithmColor(name, chartstyle.KindBackground)
		bd := chartstyle.AlgorithmColor(name, chartstyle.KindBorder)
		block := lipgloss.NewStyle().
			Background(lipgloss.Color(chartstyle.Flatten(bg, t.CanvasColor))).
			Foreground(lipgloss.Color(chartstyle.Flatten(bd, t.CanvasColor))).
			Render(" ██ ")
		lines = append(lines, fmt.Sprintf("%s %-9s %s  %s", block, name, bg, bd))
	}
	return strings.Join(lines, "\n")
}
