// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeranaias/cipherchart/internal/canvas"
	"github.com/jeranaias/cipherchart/internal/chartstyle"
	"github.com/jeranaias/cipherchart/internal/dom"
	"github.com/jeranaias/cipherchart/internal/themewatch"
)

func newWatchCmd(app *App) *cobra.Command {
	var (
		cf       chartFlags
		prefs    string
		outDir   string
		filename string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render the chart whenever the theme preferences change",
		Long: `Watch a theme preferences file and re-render the chart on every change.

The preferences file is TOML:

  theme = "dark"          # light, dark or auto
  classes = ["compact"]   # extra root classes

Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := firstNonEmpty(prefs, app.Config.Theme.PreferencesFile)
			if path == "" {
				return errors.New("--prefs is required (or set theme.preferences_file)")
			}

			rs, err := cf.load()
			if err != nil {
				return err
			}
			chart, err := cf.chart(app, rs)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			doc := dom.NewDocument(dom.WithLogger(app.Logger))
			defer doc.Close()

			styler := chartstyle.NewStyler(doc, app.Logger)
			obs, err := styler.Observe(doc)
			if err != nil {
				return err
			}
			defer obs.Disconnect()

			board := canvas.NewBoard()
			board.Attach(styler)
			defer board.Detach()
			if err := board.Register(chart); err != nil {
				return err
			}

			dir := firstNonEmpty(outDir, app.Config.Export.Dir)
			name := firstNonEmpty(filename, app.Config.Export.Filename)
			exporter := canvas.NewExporter(board, canvas.DirSink{Dir: dir}, app.Logger)

			// Registered after the board so the chart already has the new theme.
			cancel := styler.Subscribe(func(chartstyle.Defaults) {
				exporter.ExportChartAsImage(chartID, name)
			})
			defer cancel()

			watcher, err := themewatch.NewWatcher(path, doc, app.detector(), app.Logger)
			if err != nil {
				return err
			}

			app.Logger.Info().
				Str("preferences", path).
				Str("out", dir).
				Msg("watching theme preferences")
			return watcher.Run(ctx)
		},
	}

	cf.bind(cmd)
	cmd.Flags().StringVarP(&prefs, "prefs", "p", "", "theme preferences file (default from config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().StringVarP(&filename, "filename", "f", "", "image file name (default chart.png)")
	return cmd
}
