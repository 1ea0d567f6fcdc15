// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/cipherchart/internal/canvas"
	"github.com/jeranaias/cipherchart/internal/chartstyle"
	"github.com/jeranaias/cipherchart/internal/results"
)

func sampleResults() []results.Result {
	return []results.Result{
		{Algorithm: "DES", OverallScore: 0.3512, Performance: 0.5, Security: 0.2, KeySize: 56,
			SecurityLevel: "Low", IntegrityCheck: false, AvgCPUPercent: 3.14159},
		{Algorithm: "AES", OverallScore: 0.81234, Performance: 0.91, Security: 0.94, KeyManagement: 0.7,
			Integrity: 1, EncryptionTimeMs: 0.42111, DecryptionTimeMs: 0.3127, KeySize: 256,
			Entropy: 0.99812, SecurityLevel: "High", IntegrityCheck: true},
		{Algorithm: "Blowfish", OverallScore: 0.5402, KeySize: 128, SecurityLevel: "Medium", IntegrityCheck: true},
	}
}

func newReport(t *testing.T, theme chartstyle.Defaults) *Report {
	t.Helper()
	r, err := New("Weekly audit", sampleResults(), theme)
	require.NoError(t, err)
	r.CreatedAt = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	return r
}

type fakeChart struct {
	url string
	err error
}

func (f fakeChart) DataURL() (string, error) { return f.url, f.err }

// =============================================================================
// REPORT TESTS
// =============================================================================

func TestNew(t *testing.T) {
	r := newReport(t, chartstyle.DarkDefaults())

	_, err := uuid.Parse(r.ID)
	assert.NoError(t, err)
	assert.Equal(t, "AES", r.Best)
	assert.Equal(t, chartstyle.DarkDefaults(), r.Theme)
	assert.Equal(t, chartstyle.DefaultResponsiveOptions(), r.Options)
	assert.Len(t, r.Results, 3)
}

func TestNew_NoResults(t *testing.T) {
	_, err := New("x", nil, chartstyle.LightDefaults())
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestNew_DefaultTitleAndCopy(t *testing.T) {
	rs := sampleResults()
	r, err := New("  ", rs, chartstyle.LightDefaults())
	require.NoError(t, err)
	assert.Equal(t, "Encryption Algorithm Audit", r.Title)

	rs[0].Algorithm = "changed"
	assert.Equal(t, "DES", r.Results[0].Algorithm)
}

func TestRanked(t *testing.T) {
	r := newReport(t, chartstyle.LightDefaults())
	assert.Equal(t, []string{"AES", "Blowfish", "DES"}, results.Algorithms(r.Ranked()))
	assert.Equal(t, "DES", r.Results[0].Algorithm)
}

func TestAttachChart(t *testing.T) {
	r := newReport(t, chartstyle.LightDefaults())

	require.NoError(t, r.AttachChart(fakeChart{url: "data:image/png;base64,AAAA"}))
	assert.Equal(t, "data:image/png;base64,AAAA", r.ChartDataURL)

	err := r.AttachChart(fakeChart{err: errors.New("boom")})
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, "data:image/png;base64,AAAA", r.ChartDataURL)
}

func TestAttachChart_ScoreChart(t *testing.T) {
	r := newReport(t, chartstyle.LightDefaults())
	chart := canvas.NewScoreChart("overall", r.Results)

	require.NoError(t, r.AttachChart(chart))
	assert.True(t, strings.HasPrefix(r.ChartDataURL, "data:image/png;base64,"))
}

// =============================================================================
// HTML TESTS
// =============================================================================

func TestHTMLExporter_Content(t *testing.T) {
	r := newReport(t, chartstyle.DarkDefaults())
	out, err := NewHTMLExporter(nil).Export(r)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, `<body class="dark">`)
	assert.Contains(t, html, "--text: #9CA3AF;")
	assert.Contains(t, html, "--border: #374151;")
	assert.Contains(t, html, "<strong>AES</strong>")
	assert.Contains(t, html, `<td class="score-high">0.8123</td>`)
	assert.Contains(t, html, `<td class="score-medium">0.5402</td>`)
	assert.Contains(t, html, `<td class="score-low">0.3512</td>`)
	assert.Contains(t, html, "<td>3.14</td>")
	assert.Contains(t, html, "<td>0.4211</td>")
	assert.Contains(t, html, "✓ Passed")
	assert.Contains(t, html, "✗ Failed")
	assert.Contains(t, html, "rgba(59, 130, 246, 0.8)")
	assert.Contains(t, html, "<h2>Details</h2>")
	assert.NotContains(t, html, "<img")

	// Ranked order: AES before Blowfish before DES.
	aes := strings.Index(html, "<td>1</td>")
	assert.Less(t, aes, strings.Index(html, "<td>2</td>"))
	assert.Less(t, strings.Index(html, "<td>2</td>"), strings.Index(html, "<td>3</td>"))
}

func TestHTMLExporter_LightAndChart(t *testing.T) {
	r := newReport(t, chartstyle.LightDefaults())
	r.ChartDataURL = "data:image/png;base64,AAAA"

	out, err := NewHTMLExporter(&Options{}).Export(r)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, `<body class="light">`)
	assert.Contains(t, html, "--text: #6B7280;")
	assert.Contains(t, html, `<img src="data:image/png;base64,AAAA"`)
	assert.NotContains(t, html, "<h2>Details</h2>")
}

func TestHTMLExporter_EscapesNames(t *testing.T) {
	r := newReport(t, chartstyle.LightDefaults())
	r.Title = "<script>alert(1)</script>"
	r.Results[0].Algorithm = "<b>x</b>"

	out, err := NewHTMLExporter(nil).Export(r)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>alert(1)</script>")
	assert.NotContains(t, string(out), "<b>x</b>")
	assert.Contains(t, string(out), "&lt;b&gt;x&lt;/b&gt;")
	// Unknown algorithms get the fallback swatch.
	assert.Contains(t, string(out), chartstyle.FallbackColor)
}

func TestExporters_RejectEmpty(t *testing.T) {
	for _, e := range []Exporter{NewHTMLExporter(nil), NewMarkdownExporter(nil), NewJSONExporter(nil)} {
		_, err := e.Export(nil)
		assert.Error(t, err)

		_, err = e.Export(&Report{})
		assert.ErrorIs(t, err, ErrNoResults)
	}
}

// =============================================================================
// MARKDOWN TESTS
// =============================================================================

func TestMarkdownExporter_Content(t *testing.T) {
	r := newReport(t, chartstyle.LightDefaults())
	r.Results[2].Algorithm = "Blow|fish"

	out, err := NewMarkdownExporter(nil).Export(r)
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "---\ntitle: Weekly audit\n"))
	assert.Contains(t, md, "theme: light\n")
	assert.Contains(t, md, "**Best algorithm:** AES (S = 0.8123, high)")
	assert.Contains(t, md, "| 1 | AES | 0.8123 | 0.9100 | 0.9400 | 0.7000 | 1.0000 | high |")
	assert.Contains(t, md, "| 3 | DES | 0.3512 |")
	assert.Contains(t, md, "Blow\\|fish")
	assert.Contains(t, md, "| DES | 56 | 0.0000 | Low | ✗ Failed |")
	assert.Contains(t, md, "### AES")
}

func TestMarkdownExporter_EscapesYAMLTitle(t *testing.T) {
	r := newReport(t, chartstyle.LightDefaults())
	r.Title = "Audit\ninjected: true"

	out, err := NewMarkdownExporter(nil).Export(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), `title: "Audit\ninjected: true"`)
	assert.NotContains(t, string(out), "\ninjected: true\n")
}

// =============================================================================
// JSON TESTS
// =============================================================================

func TestJSONExporter(t *testing.T) {
	r := newReport(t, chartstyle.DarkDefaults())
	out, err := NewJSONExporter(nil).Export(r)
	require.NoError(t, err)

	var back Report
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, r.ID, back.ID)
	assert.Equal(t, "AES", back.Best)
	assert.True(t, back.Theme.Dark)
	assert.Len(t, back.Results, 3)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.NotContains(t, raw, "chart")
	assert.Contains(t, raw, "chart_options")
}

// =============================================================================
// FILE EXPORT TESTS
// =============================================================================

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	r := newReport(t, chartstyle.LightDefaults())

	path, err := ExportHTML(r, &Options{OutputDir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audit_Weekly_audit_20250314_092653.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")

	path, err = ExportMarkdown(r, &Options{OutputDir: dir})
	require.NoError(t, err)
	assert.Equal(t, ".md", filepath.Ext(path))
}

func TestExportToFile_NilReport(t *testing.T) {
	_, err := ExportToFile(nil, NewJSONExporter(nil), nil)
	assert.Error(t, err)
}

func TestExporterFor(t *testing.T) {
	tests := []struct {
		format string
		ext    string
		mime   string
	}{
		{"", ".html", "text/html"},
		{"HTML", ".html", "text/html"},
		{"md", ".md", "text/markdown"},
		{"markdown", ".md", "text/markdown"},
		{"json", ".json", "application/json"},
	}
	for _, tt := range tests {
		e, err := ExporterFor(tt.format, nil)
		require.NoError(t, err, tt.format)
		assert.Equal(t, tt.ext, e.FileExtension())
		assert.Equal(t, tt.mime, e.MimeType())
	}

	_, err := ExporterFor("pdf", nil)
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Weekly audit", "Weekly_audit"},
		{"a/b\\c:d", "a-b-c-d"},
		{"", "report"},
		{"x\x01y", "x-y"},
		{strings.Repeat("é", 60), strings.Repeat("é", 50)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), tt.in)
	}
}
