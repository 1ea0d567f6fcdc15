// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package canvas holds the chart instances of an audit page.
//
// A Board maps element ids to Canvas values. Attached to a
// chartstyle.Styler, it re-themes every registered canvas on each publish.
// ScoreChart draws per-algorithm metrics as a go-chart bar chart, and
// Exporter turns a canvas into a PNG download:
//
//	board := canvas.NewBoard()
//	board.Attach(styler)
//	board.Register(canvas.NewScoreChart("scoreChart", rs))
//
//	exp := canvas.NewExporter(board, canvas.DirSink{Dir: "out"}, logger)
//	exp.ExportChartAsImage("scoreChart", "")
package canvas
