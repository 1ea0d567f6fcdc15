// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the chart, report and config
// packages.
//
//	// Write a chart without leaving a half-written PNG behind.
//	err := util.AtomicWriteFile(path, png, 0o644)
//
//	// Fit an algorithm name into a fixed-width column.
//	label := util.TruncateRunes(name, 10)
package util
