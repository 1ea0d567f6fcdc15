// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chartstyle

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// CHART DEFAULT COLORS
// =============================================================================

// ChartText - Axis labels, tick labels, titles and legend text
var ChartText = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

// ChartBorder - Axis strokes, grid lines, bar outlines on the canvas
var ChartBorder = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}

// ChartCanvas - Plot area and image background
var ChartCanvas = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111827"}

// FontFamily is the font stack handed to HTML consumers of the theme.
const FontFamily = "'Inter', sans-serif"

// =============================================================================
// SCORE COLORS
// =============================================================================

const (
	// ScoreGreen marks scores at or above ScoreHighThreshold.
	ScoreGreen = "#10B981"
	// ScoreYellow marks scores at or above ScoreMediumThreshold.
	ScoreYellow = "#F59E0B"
	// ScoreRed marks everything else, NaN included.
	ScoreRed = "#EF4444"
)

// =============================================================================
// TOOLTIP / FALLBACK
// =============================================================================

// TooltipBackground is the translucent tooltip fill used by ResponsiveOptions.
const TooltipBackground = "rgba(0, 0, 0, 0.8)"

// FallbackColor is returned for any algorithm or color kind outside the palette.
const FallbackColor = "rgba(100, 100, 100, 0.8)"
