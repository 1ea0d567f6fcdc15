// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jeranaias/cipherchart/internal/canvas"
	"github.com/jeranaias/cipherchart/internal/results"
)

// chartID is the canvas id used by the render and watch commands.
const chartID = "scores"

// chartFlags are shared by every command that draws a chart.
type chartFlags struct {
	input   string
	metric  string
	colorBy string
	width   int
	height  int
	title   string
}

func (f *chartFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.input, "input", "i", "", "results file (.json or .toml)")
	flags.StringVar(&f.metric, "metric", "", "metric to plot (default from config)")
	flags.StringVar(&f.colorBy, "color-by", "", "bar colors: score or algorithm (default from config)")
	flags.IntVar(&f.width, "width", 0, "image width in pixels (default from config)")
	flags.IntVar(&f.height, "height", 0, "image height in pixels (default from config)")
	flags.StringVar(&f.title, "chart-title", "", "chart title (default: metric name)")
}

// load reads the results file. It is an error to omit --input.
func (f *chartFlags) load() ([]results.Result, error) {
	if f.input == "" {
		return nil, errors.New("--input is required")
	}
	return results.Load(f.input)
}

// chart builds the score chart for rs, filling unset flags from config.
func (f *chartFlags) chart(app *App, rs []results.Result) (*canvas.ScoreChart, error) {
	cc := app.Config.Chart

	metricName := f.metric
	if metricName == "" {
		metricName = cc.Metric
	}
	metric, err := canvas.ParseMetric(metricName)
	if err != nil {
		return nil, err
	}

	modeName := f.colorBy
	if modeName == "" {
		modeName = cc.ColorBy
	}
	mode, err := canvas.ParseColorMode(modeName)
	if err != nil {
		return nil, err
	}

	width, height := cc.Width, cc.Height
	if f.width > 0 {
		width = f.width
	}
	if f.height > 0 {
		height = f.height
	}

	opts := []canvas.Option{
		canvas.WithMetric(metric),
		canvas.WithColorMode(mode),
		canvas.WithSize(width, height),
	}
	if f.title != "" {
		opts = append(opts, canvas.WithTitle(f.title))
	}
	return canvas.NewScoreChart(chartID, rs, opts...), nil
}

// RenderResult is the --json payload of the render command.
type RenderResult struct {
	Path   string `json:"path"`
	Theme  string `json:"theme"`
	Metric string `json:"metric"`
}

func newRenderCmd(app *App) *cobra.Command {
	var (
		cf       chartFlags
		outDir   string
		filename string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a results file to a PNG chart",
		Example: `  cipherchart render -i results.json
  cipherchart render -i results.toml --metric security --theme dark -o charts/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := cf.load()
			if err != nil {
				return err
			}

			doc, styler, err := app.newDocument()
			if err != nil {
				return err
			}
			defer doc.Close()

			board := canvas.NewBoard()
			board.Attach(styler)
			defer board.Detach()

			chart, err := cf.chart(app, rs)
			if err != nil {
				return err
			}
			if err := board.Register(chart); err != nil {
				return err
			}

			dir := firstNonEmpty(outDir, app.Config.Export.Dir)
			name := firstNonEmpty(filename, app.Config.Export.Filename)
			exporter := canvas.NewExporter(board, canvas.DirSink{Dir: dir}, app.Logger)
			if _, err := exporter.Export(chartID, name); err != nil {
				return err
			}

			res := RenderResult{
				Path:   filepath.Join(dir, filepath.Base(name)),
				Theme:  board.Theme().Mode(),
				Metric: string(chart.Metric()),
			}
			if app.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), "render", res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s theme)\n", SuccessStyle.Render("Saved"), res.Path, res.Theme)
			return nil
		},
	}

	cf.bind(cmd)
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().StringVarP(&filename, "filename", "f", "", "image file name (default chart.png)")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
