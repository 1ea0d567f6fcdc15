// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/cipherchart/internal/report"
)

func newReportCmd(app *App) *cobra.Command {
	var (
		cf        chartFlags
		format    string
		outDir    string
		title     string
		open      bool
		printOut  bool
		noChart   bool
		noDetails bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write an HTML, Markdown or JSON audit report",
		Example: `  cipherchart report -i results.json
  cipherchart report -i results.json --format md --print`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := cf.load()
			if err != nil {
				return err
			}

			opts := report.DefaultOptions()
			opts.OutputDir = firstNonEmpty(outDir, app.Config.Export.Dir)
			opts.OpenAfterExport = open
			opts.IncludeDetails = !noDetails

			exporter, err := report.ExporterFor(format, opts)
			if err != nil {
				return err
			}

			theme := app.themeDefaults()
			r, err := report.New(title, rs, theme)
			if err != nil {
				return err
			}

			if !noChart && exporter.FileExtension() != ".md" {
				chart, err := cf.chart(app, rs)
				if err != nil {
					return err
				}
				chart.SetTheme(theme)
				if err := r.AttachChart(chart); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if printOut {
				content, err := exporter.Export(r)
				if err != nil {
					return err
				}
				return printReport(out, string(content), exporter, theme.Dark)
			}

			path, err := report.ExportToFile(r, exporter, opts)
			if err != nil {
				return err
			}
			app.Logger.Info().Str("path", path).Str("report_id", r.ID).Msg("report written")

			if app.jsonOutput {
				return writeJSON(out, "report", map[string]string{
					"path":           path,
					"id":             r.ID,
					"best_algorithm": r.Best,
				})
			}
			fmt.Fprintf(out, "%s %s\n", SuccessStyle.Render("Saved"), path)
			return nil
		},
	}

	cf.bind(cmd)
	flags := cmd.Flags()
	flags.StringVar(&format, "format", "html", "report format: html, md or json")
	flags.StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	flags.StringVarP(&title, "title", "t", "", "report title")
	flags.BoolVar(&open, "open", false, "open the report after writing it")
	flags.BoolVar(&printOut, "print", false, "print to stdout instead of writing a file")
	flags.BoolVar(&noChart, "no-chart", false, "do not embed a chart image")
	flags.BoolVar(&noDetails, "no-details", false, "omit the per-algorithm details section")
	return cmd
}

// printReport writes content to w, rendering Markdown when w is a terminal.
func printReport(w io.Writer, content string, exporter report.Exporter, dark bool) error {
	if isTerminalWriter(w) {
		switch exporter.FileExtension() {
		case ".md":
			content = renderMarkdown(content, dark, GetTerminalWidth())
		case ".json":
			if ColorsEnabled() {
				content = highlight(content, "json")
			}
		}
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	_, err := io.WriteString(w, content)
	return err
}
