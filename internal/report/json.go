// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"encoding/json"
	"errors"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter writes the complete report, chart and theme included.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter. Options are accepted for
// consistency; JSON output is always complete.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts a report to indented JSON.
func (e *JSONExporter) Export(r *Report) ([]byte, error) {
	if r == nil {
		return nil, errors.New("report is nil")
	}
	if len(r.Results) == 0 {
		return nil, ErrNoResults
	}
	return json.MarshalIndent(r, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
