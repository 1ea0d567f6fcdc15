// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the cipherchart command line.
//
// Commands:
//
//	cipherchart palette            Show theme and algorithm colors
//	cipherchart score <v>...       Classify scores into color bands
//	cipherchart format <v>...      Format numbers for chart labels
//	cipherchart options            Print the shared chart options
//	cipherchart render             Render a results file to PNG
//	cipherchart report             Write an HTML, Markdown or JSON report
//	cipherchart watch              Re-render whenever the theme changes
//	cipherchart preview            Interactive terminal preview
//	cipherchart config             Show or edit the configuration
//	cipherchart version            Print version information
//
// Global flags --config, --theme, --log-level and --json apply to every
// command.
package cli
