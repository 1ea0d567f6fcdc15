// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package canvas

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jeranaias/cipherchart/internal/chartstyle"
)

// themePalette maps a theme context onto go-chart's palette.
type themePalette struct {
	theme chartstyle.Defaults
}

var _ chart.ColorPalette = themePalette{}

func (p themePalette) BackgroundColor() drawing.Color {
	return cssColor(p.theme.CanvasColor)
}

func (p themePalette) BackgroundStrokeColor() drawing.Color {
	return cssColor(p.theme.CanvasColor)
}

func (p themePalette) CanvasColor() drawing.Color {
	return cssColor(p.theme.CanvasColor)
}

func (p themePalette) CanvasStrokeColor() drawing.Color {
	return cssColor(p.theme.BorderColor)
}

func (p themePalette) AxisStrokeColor() drawing.Color {
	return cssColor(p.theme.BorderColor)
}

func (p themePalette) TextColor() drawing.Color {
	return cssColor(p.theme.TextColor)
}

// GetSeriesColor cycles through the algorithm borders in display order.
func (p themePalette) GetSeriesColor(index int) drawing.Color {
	names := chartstyle.Algorithms()
	if index < 0 {
		index = -index
	}
	return cssColor(chartstyle.AlgorithmColor(names[index%len(names)], chartstyle.KindBorder))
}

// cssColor converts a palette string to a drawing color. Unparseable input
// becomes the fallback gray.
func cssColor(css string) drawing.Color {
	c, err := chartstyle.ParseColor(css)
	if err != nil {
		c = chartstyle.MustParseColor(chartstyle.FallbackColor)
	}
	return drawing.Color(c)
}
