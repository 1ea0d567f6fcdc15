// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/cipherchart/internal/canvas"
	"github.com/jeranaias/cipherchart/internal/results"
	"github.com/jeranaias/cipherchart/internal/ui/preview"
)

func newPreviewCmd(app *App) *cobra.Command {
	var (
		input  string
		metric string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Interactive terminal preview of the chart theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rs []results.Result
			if input != "" {
				var err error
				if rs, err = results.Load(input); err != nil {
					return err
				}
			}

			m, err := canvas.ParseMetric(firstNonEmpty(metric, app.Config.Chart.Metric))
			if err != nil {
				return err
			}

			doc, styler, err := app.newDocument()
			if err != nil {
				return err
			}
			defer doc.Close()

			model := preview.New(doc, styler, rs, m)
			defer model.Close()

			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "results file (.json or .toml)")
	cmd.Flags().StringVar(&metric, "metric", "", "initial metric")
	return cmd
}
