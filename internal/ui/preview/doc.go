// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview is a terminal preview of the chart theme.
//
// The model toggles the dark marker on a document and renders whatever the
// styler publishes in response, so the screen always shows the theme context
// a chart would receive.
package preview
