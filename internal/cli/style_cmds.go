// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/jeranaias/cipherchart/internal/chartstyle"
	"github.com/jeranaias/cipherchart/internal/ui/preview"
)

// =============================================================================
// PALETTE
// =============================================================================

// PaletteInfo is the --json payload of the palette command.
type PaletteInfo struct {
	Theme      chartstyle.Defaults                    `json:"theme"`
	Algorithms map[string]chartstyle.AlgorithmPalette `json:"algorithms"`
	Fallback   string                                 `json:"fallback"`
	Scores     map[string]string                      `json:"scores"`
}

func newPaletteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Show theme and algorithm colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			theme := app.themeDefaults()
			out := cmd.OutOrStdout()

			if app.jsonOutput {
				return writeJSON(out, "palette", PaletteInfo{
					Theme:      theme,
					Algorithms: chartstyle.AlgorithmPalettes(),
					Fallback:   chartstyle.FallbackColor,
					Scores: map[string]string{
						chartstyle.ScoreHigh.String():   chartstyle.ScoreGreen,
						chartstyle.ScoreMedium.String(): chartstyle.ScoreYellow,
						chartstyle.ScoreLow.String():    chartstyle.ScoreRed,
					},
				})
			}

			fmt.Fprintln(out, TitleStyle.Render(fmt.Sprintf("Chart theme: %s", theme.Mode())))
			fmt.Fprintln(out, preview.Swatches(theme))
			fmt.Fprintln(out, SectionStyle.Render("Algorithms"))
			fmt.Fprintln(out, preview.AlgorithmSwatches(theme))
			fmt.Fprintf(out, "fallback  %s\n", chartstyle.FallbackColor)
			fmt.Fprintln(out, SectionStyle.Render("Scores"))
			fmt.Fprintln(out, preview.ScoreLegend())
			return nil
		},
	}
}

// =============================================================================
// SCORE
// =============================================================================

// ScoreInfo describes the band of one score.
type ScoreInfo struct {
	Input string  `json:"input"`
	Score float64 `json:"score"`
	Band  string  `json:"band"`
	Color string  `json:"color"`
	Class string  `json:"class"`
}

func newScoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "score <value>...",
		Short: "Classify scores into color bands",
		Long: fmt.Sprintf("Scores at or above %.1f are green, at or above %.1f yellow, anything else red.",
			chartstyle.ScoreHighThreshold, chartstyle.ScoreMediumThreshold),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := make([]ScoreInfo, 0, len(args))
			for _, arg := range args {
				v, err := cast.ToFloat64E(strings.TrimSpace(arg))
				if err != nil {
					return fmt.Errorf("invalid score %q: %w", arg, err)
				}
				b := chartstyle.BucketFor(v)
				infos = append(infos, ScoreInfo{
					Input: arg,
					Score: v,
					Band:  b.String(),
					Color: b.Color(),
					Class: b.Class(),
				})
			}

			out := cmd.OutOrStdout()
			if app.jsonOutput {
				return writeJSON(out, "score", infos)
			}
			for _, info := range infos {
				fmt.Fprintf(out, "%s %s %s\n",
					LabelStyle.Render(chartstyle.FormatNumberPrec(info.Score, app.Config.Format.Decimals)),
					scoreStyle(info.Score).Render(fmt.Sprintf("%-6s", info.Band)),
					info.Color)
			}
			return nil
		},
	}
}

// =============================================================================
// FORMAT
// =============================================================================

func newFormatCmd(app *App) *cobra.Command {
	var decimals int

	cmd := &cobra.Command{
		Use:   "format <value>...",
		Short: "Format numbers for chart labels",
		Long:  "Format numbers with a fixed number of decimals. Values that are not numbers print as NaN.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := app.Config.Format.Decimals
			if cmd.Flags().Changed("decimals") {
				d = decimals
			}

			formatted := make([]string, len(args))
			for i, arg := range args {
				formatted[i] = chartstyle.FormatValue(arg, d)
			}

			out := cmd.OutOrStdout()
			if app.jsonOutput {
				return writeJSON(out, "format", formatted)
			}
			for _, f := range formatted {
				fmt.Fprintln(out, f)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&decimals, "decimals", "d", chartstyle.DefaultDecimals, "digits after the decimal point")
	return cmd
}

// =============================================================================
// OPTIONS
// =============================================================================

func newOptionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the shared chart options as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := chartstyle.DefaultResponsiveOptions()
			if app.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), "options", opts)
			}
			return writeRawJSON(cmd.OutOrStdout(), opts)
		},
	}
}
