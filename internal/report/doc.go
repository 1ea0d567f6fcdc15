// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report builds audit reports from algorithm results.
//
// A Report snapshots the results, the chart theme and an optional chart
// image. Exporters render it as HTML, Markdown or JSON:
//
//	r, err := report.New("Weekly audit", rs, styler.Defaults())
//	if err != nil {
//	    return err
//	}
//	r.AttachChart(chart)
//	path, err := report.ExportToFile(r, report.NewHTMLExporter(nil), nil)
package report
