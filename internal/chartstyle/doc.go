// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chartstyle provides the theme-reactive styling layer for cipherchart.

Charts never read library-global color settings. Instead a Styler keeps one
immutable Defaults value (the theme context) in sync with the document's
dark-mode marker and publishes every recompute to its subscribers.

# Theme Context (defaults.go, styler.go)

	ChartText   - axis labels, titles, legends
	ChartBorder - axis strokes, grid lines
	ChartCanvas - plot background

Each color is a Lip Gloss AdaptiveColor, so the same token renders correctly
in terminal previews and in PNG exports:

	styler := chartstyle.NewStyler(doc, logger)
	if _, err := styler.Observe(doc); err != nil {
		return err
	}
	cancel := styler.Subscribe(func(d chartstyle.Defaults) {
		chart.SetTheme(d)
	})
	defer cancel()

# Helpers

  - FormatNumber, FormatNumberPrec, FormatValue - fixed-decimal formatting
  - ScoreColor, ScoreClass - three-bucket score coloring (0.7 / 0.4)
  - AlgorithmColor, AlgorithmPalettes - fixed palette per cipher name
  - DefaultResponsiveOptions - shared chart construction options
  - ParseColor, Flatten - CSS color strings to drawable colors

None of the helpers return errors for bad input: unknown algorithms and kinds
fall back to FallbackColor and non-numeric values format as "NaN".
*/
package chartstyle
