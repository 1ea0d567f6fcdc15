// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chartstyle

// Mode names used in configuration, CSS classes and logs.
const (
	ModeLight = "light"
	ModeDark  = "dark"
)

// Defaults is the theme context handed to every chart instance.
// Values are immutable: a theme change produces a new Defaults rather than
// mutating the one a chart already holds.
type Defaults struct {
	Dark        bool   `json:"dark" toml:"dark"`
	TextColor   string `json:"text_color" toml:"text_color"`
	BorderColor string `json:"border_color" toml:"border_color"`
	CanvasColor string `json:"canvas_color" toml:"canvas_color"`
	FontFamily  string `json:"font_family" toml:"font_family"`
}

// DefaultsFor returns the fixed color set for the given theme flag.
func DefaultsFor(dark bool) Defaults {
	if dark {
		return Defaults{
			Dark:        true,
			TextColor:   ChartText.Dark,
			BorderColor: ChartBorder.Dark,
			CanvasColor: ChartCanvas.Dark,
			FontFamily:  FontFamily,
		}
	}
	return Defaults{
		Dark:        false,
		TextColor:   ChartText.Light,
		BorderColor: ChartBorder.Light,
		CanvasColor: ChartCanvas.Light,
		FontFamily:  FontFamily,
	}
}

// LightDefaults returns the light theme context.
func LightDefaults() Defaults { return DefaultsFor(false) }

// DarkDefaults returns the dark theme context.
func DarkDefaults() Defaults { return DefaultsFor(true) }

// Mode returns "dark" or "light".
func (d Defaults) Mode() string {
	if d.Dark {
		return ModeDark
	}
	return ModeLight
}
