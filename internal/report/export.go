// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/cipherchart/internal/chartstyle"
	"github.com/jeranaias/cipherchart/internal/results"
	"github.com/jeranaias/cipherchart/internal/util"
)

// ErrNoResults is returned when a report would have no rows.
var ErrNoResults = errors.New("report has no results")

// =============================================================================
// REPORT
// =============================================================================

// Report is a point-in-time audit summary.
type Report struct {
	ID        string                       `json:"id"`
	Title     string                       `json:"title"`
	CreatedAt time.Time                    `json:"created_at"`
	Best      string                       `json:"best_algorithm"`
	Theme     chartstyle.Defaults          `json:"theme"`
	Options   chartstyle.ResponsiveOptions `json:"chart_options"`
	Results   []results.Result             `json:"results"`

	// ChartDataURL is a data:image/png URL, empty when no chart is attached.
	ChartDataURL string `json:"chart,omitempty"`
}

// ChartSource renders a chart as a data URL.
type ChartSource interface {
	DataURL() (string, error)
}

// New creates a report over rs styled with theme.
func New(title string, rs []results.Result, theme chartstyle.Defaults) (*Report, error) {
	if len(rs) == 0 {
		return nil, ErrNoResults
	}
	best, _ := results.Best(rs)
	if strings.TrimSpace(title) == "" {
		title = "Encryption Algorithm Audit"
	}

	return &Report{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now(),
		Best:      best.Algorithm,
		Theme:     theme,
		Options:   chartstyle.DefaultResponsiveOptions(),
		Results:   append([]results.Result(nil), rs...),
	}, nil
}

// AttachChart renders src and embeds it in the report.
func (r *Report) AttachChart(src ChartSource) error {
	url, err := src.DataURL()
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	r.ChartDataURL = url
	return nil
}

// Ranked returns the results ordered by overall score, highest first.
func (r *Report) Ranked() []results.Result {
	return results.SortedByScore(r.Results)
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for report exporters.
type Exporter interface {
	// Export converts a report to the target format and returns the content.
	Export(r *Report) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md", ".html").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool

	// IncludeDetails adds a per-algorithm metrics section.
	IncludeDetails bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:      ".",
		IncludeDetails: true,
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile exports a report to a file using the specified exporter.
// Returns the output file path or an error.
func ExportToFile(r *Report, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if r == nil {
		return "", errors.New("report is nil")
	}

	content, err := exporter.Export(r)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := fmt.Sprintf("audit_%s_%s%s",
		sanitizeFilename(r.Title),
		r.CreatedAt.Format("20060102_150405"),
		exporter.FileExtension(),
	)

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	outputPath := filepath.Join(dir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if opts.OpenAfterExport {
		if err := openFile(outputPath); err != nil {
			return outputPath, fmt.Errorf("could not open %s: %w", outputPath, err)
		}
	}

	return outputPath, nil
}

// ExportMarkdown exports to Markdown format.
func ExportMarkdown(r *Report, opts *Options) (string, error) {
	return ExportToFile(r, NewMarkdownExporter(opts), opts)
}

// ExportHTML exports to HTML format.
func ExportHTML(r *Report, opts *Options) (string, error) {
	return ExportToFile(r, NewHTMLExporter(opts), opts)
}

// ExporterFor returns the exporter for a format name: html, md/markdown or json.
func ExporterFor(format string, opts *Options) (Exporter, error) {
	switch strings.ToLower(format) {
	case "html", "":
		return NewHTMLExporter(opts), nil
	case "md", "markdown":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(opts), nil
	}
	return nil, fmt.Errorf("unknown report format %q", format)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	s = util.TruncateRunesNoEllipsis(s, 50)

	replacer := map[rune]rune{
		'/':  '-',
		'\\': '-',
		':':  '-',
		'*':  '-',
		'?':  '-',
		'"':  '-',
		'<':  '-',
		'>':  '-',
		'|':  '-',
		' ':  '_',
		'\t': '_',
		'\n': '_',
		'\r': '_',
	}

	var result []rune
	for _, r := range s {
		if replacement, found := replacer[r]; found {
			result = append(result, replacement)
		} else if r < 32 || r == 127 {
			result = append(result, '-')
		} else {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "report"
	}
	return string(result)
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// integrityLabel renders the integrity check result.
func integrityLabel(ok bool) string {
	if ok {
		return "✓ Passed"
	}
	return "✗ Failed"
}

// score formats a normalized score or timing with four decimals.
func score(v float64) string {
	return chartstyle.FormatNumberPrec(v, 4)
}

// percent formats CPU usage with two decimals.
func percent(v float64) string {
	return chartstyle.FormatNumberPrec(v, 2)
}
