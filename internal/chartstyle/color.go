// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chartstyle

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned by ParseColor for unrecognized color strings.
var ErrInvalidColor = errors.New("invalid color")

// ParseColor parses the CSS color forms used by the palette:
// #RGB, #RRGGBB, rgb(r, g, b) and rgba(r, g, b, a).
func ParseColor(css string) (color.NRGBA, error) {
	s := strings.ToLower(strings.TrimSpace(css))

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, css, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	}

	var body string
	var wantAlpha bool
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		body = s[len("rgba(") : len(s)-1]
		wantAlpha = true
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		body = s[len("rgb(") : len(s)-1]
	default:
		return color.NRGBA{}, fmt.Errorf("%w %q", ErrInvalidColor, css)
	}

	parts := strings.Split(body, ",")
	if (wantAlpha && len(parts) != 4) || (!wantAlpha && len(parts) != 3) {
		return color.NRGBA{}, fmt.Errorf("%w %q: wrong component count", ErrInvalidColor, css)
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, css, err)
		}
		channels[i] = uint8(math.Round(clamp(v, 0, 255)))
	}

	alpha := uint8(255)
	if wantAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, css, err)
		}
		alpha = uint8(math.Round(clamp(a, 0, 1) * 255))
	}

	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}

// MustParseColor is ParseColor for compile-time constants. It panics on error.
func MustParseColor(css string) color.NRGBA {
	c, err := ParseColor(css)
	if err != nil {
		panic(err)
	}
	return c
}

// Flatten composites a possibly translucent color over an opaque backdrop
// and returns the result as #rrggbb. Terminals cannot draw alpha, so
// previews use this for palette swatches. Unparseable input yields the
// backdrop unchanged.
func Flatten(css, backdrop string) string {
	bg, err := ParseColor(backdrop)
	if err != nil {
		bg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	bgc := toColorful(bg)

	fg, err := ParseColor(css)
	if err != nil {
		return bgc.Hex()
	}
	return bgc.BlendRgb(toColorful(fg), float64(fg.A)/255).Clamped().Hex()
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
