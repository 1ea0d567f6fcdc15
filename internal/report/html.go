// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/jeranaias/cipherchart/internal/chartstyle"
	"github.com/jeranaias/cipherchart/internal/results"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports reports to a standalone HTML page with embedded CSS.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a report to HTML.
func (e *HTMLExporter) Export(r *Report) ([]byte, error) {
	if r == nil {
		return nil, errors.New("report is nil")
	}
	if len(r.Results) == 0 {
		return nil, ErrNoResults
	}

	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(r.Title)))
	sb.WriteString("    <meta name=\"generator\" content=\"cipherchart\">\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"date\" content=\"%s\">\n", r.CreatedAt.Format(time.RFC3339)))
	sb.WriteString(e.getCSS(r.Theme))
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s\">\n", r.Theme.Mode()))

	sb.WriteString("    <div class=\"container\">\n")
	sb.WriteString(e.renderHeader(r))

	ranked := r.Ranked()
	sb.WriteString(e.renderBest(ranked[0]))
	sb.WriteString(e.renderComparison(ranked))
	if r.ChartDataURL != "" {
		sb.WriteString("        <section class=\"chart\">\n")
		sb.WriteString(fmt.Sprintf("            <img src=\"%s\" alt=\"Overall score chart\">\n", html.EscapeString(r.ChartDataURL)))
		sb.WriteString("        </section>\n")
	}
	if e.options.IncludeDetails {
		sb.WriteString(e.renderDetails(ranked))
	}
	sb.WriteString(e.renderPerformance(ranked))
	sb.WriteString(e.renderSecurity(ranked))

	sb.WriteString("        <footer class=\"footer\">\n")
	sb.WriteString(fmt.Sprintf("            <p>Generated by <strong>cipherchart</strong> on %s</p>\n",
		formatTimestamp(r.CreatedAt)))
	sb.WriteString("        </footer>\n")
	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

func (e *HTMLExporter) renderHeader(r *Report) string {
	var sb strings.Builder
	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", html.EscapeString(r.Title)))
	sb.WriteString("            <div class=\"meta\">\n")
	sb.WriteString(fmt.Sprintf("                <span>Created: %s</span>\n", formatTimestamp(r.CreatedAt)))
	sb.WriteString(fmt.Sprintf("                <span>Algorithms: %d</span>\n", len(r.Results)))
	sb.WriteString(fmt.Sprintf("                <span>Report ID: %s</span>\n", html.EscapeString(r.ID)))
	sb.WriteString("            </div>\n")
	sb.WriteString("        </header>\n")
	return sb.String()
}

func (e *HTMLExporter) renderBest(best results.Result) string {
	return fmt.Sprintf("        <section class=\"best\">\n"+
		"            <h2>Best algorithm</h2>\n"+
		"            <p>%s<strong>%s</strong> with an overall score of <span class=\"%s\">%s</span></p>\n"+
		"        </section>\n",
		swatch(best.Algorithm),
		html.EscapeString(best.Algorithm),
		chartstyle.ScoreClass(best.OverallScore),
		score(best.OverallScore))
}

func (e *HTMLExporter) renderComparison(ranked []results.Result) string {
	var sb strings.Builder
	sb.WriteString("        <section>\n")
	sb.WriteString("            <h2>Comparison</h2>\n")
	sb.WriteString("            <table>\n")
	sb.WriteString("                <tr><th>#</th><th>Algorithm</th><th>S (overall)</th><th>T (performance)</th><th>E (security)</th><th>K (key management)</th><th>I (integrity)</th></tr>\n")
	for i, r := range ranked {
		sb.WriteString(fmt.Sprintf("                <tr><td>%d</td><td>%s%s</td>%s%s%s%s%s</tr>\n",
			i+1,
			swatch(r.Algorithm),
			html.EscapeString(r.Algorithm),
			scoreCell(r.OverallScore),
			scoreCell(r.Performance),
			scoreCell(r.Security),
			scoreCell(r.KeyManagement),
			scoreCell(r.Integrity)))
	}
	sb.WriteString("            </table>\n")
	sb.WriteString("        </section>\n")
	return sb.String()
}

func (e *HTMLExporter) renderDetails(ranked []results.Result) string {
	var sb strings.Builder
	sb.WriteString("        <section class=\"details\">\n")
	sb.WriteString("            <h2>Details</h2>\n")
	for _, r := range ranked {
		sb.WriteString(fmt.Sprintf("            <div class=\"card\" style=\"border-left-color: %s\">\n",
			chartstyle.AlgorithmColor(r.Algorithm, chartstyle.KindBorder)))
		sb.WriteString(fmt.Sprintf("                <h3>%s</h3>\n", html.EscapeString(r.Algorithm)))
		sb.WriteString("                <dl>\n")
		writeTerm(&sb, "Overall", score(r.OverallScore))
		writeTerm(&sb, "Total time (ms)", score(r.TotalTimeMs))
		writeTerm(&sb, "Plaintext size", fmt.Sprintf("%d", r.PlaintextSize))
		writeTerm(&sb, "Ciphertext size", fmt.Sprintf("%d", r.CiphertextSize))
		sb.WriteString("                </dl>\n")
		sb.WriteString("            </div>\n")
	}
	sb.WriteString("        </section>\n")
	return sb.String()
}

func (e *HTMLExporter) renderPerformance(ranked []results.Result) string {
	var sb strings.Builder
	sb.WriteString("        <section>\n")
	sb.WriteString("            <h2>Performance</h2>\n")
	sb.WriteString("            <table>\n")
	sb.WriteString("                <tr><th>Algorithm</th><th>Encryption (ms)</th><th>Decryption (ms)</th><th>CPU (%)</th><th>Memory (MB)</th></tr>\n")
	for _, r := range ranked {
		sb.WriteString(fmt.Sprintf("                <tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(r.Algorithm),
			score(r.EncryptionTimeMs),
			score(r.DecryptionTimeMs),
			percent(r.AvgCPUPercent),
			score(r.AvgMemoryMB)))
	}
	sb.WriteString("            </table>\n")
	sb.WriteString("        </section>\n")
	return sb.String()
}

func (e *HTMLExporter) renderSecurity(ranked []results.Result) string {
	var sb strings.Builder
	sb.WriteString("        <section>\n")
	sb.WriteString("            <h2>Security</h2>\n")
	sb.WriteString("            <table>\n")
	sb.WriteString("                <tr><th>Algorithm</th><th>Key size (bits)</th><th>Entropy</th><th>Level</th><th>Integrity</th></tr>\n")
	for _, r := range ranked {
		sb.WriteString(fmt.Sprintf("                <tr><td>%s</td><td>%d</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(r.Algorithm),
			r.KeySize,
			score(r.Entropy),
			html.EscapeString(r.SecurityLevel),
			integrityLabel(r.IntegrityCheck)))
	}
	sb.WriteString("            </table>\n")
	sb.WriteString("        </section>\n")
	return sb.String()
}

func writeTerm(sb *strings.Builder, term, value string) {
	sb.WriteString(fmt.Sprintf("                    <dt>%s</dt><dd>%s</dd>\n", term, value))
}

func scoreCell(v float64) string {
	return fmt.Sprintf("<td class=\"%s\">%s</td>", chartstyle.ScoreClass(v), score(v))
}

func swatch(algorithm string) string {
	return fmt.Sprintf("<span class=\"swatch\" style=\"background: %s\"></span>",
		chartstyle.AlgorithmColor(algorithm, chartstyle.KindBackground))
}

// getCSS returns the embedded stylesheet. Chart colors come from the theme.
func (e *HTMLExporter) getCSS(theme chartstyle.Defaults) string {
	return fmt.Sprintf(`    <style>
        :root {
            --text: %s;
            --border: %s;
            --canvas: %s;
            --font: %s;
            --score-high: %s;
            --score-medium: %s;
            --score-low: %s;
        }

        body {
            margin: 0;
            font-family: var(--font);
            color: var(--text);
            background: var(--canvas);
        }

        body.dark h1, body.dark h2, body.dark h3 {
            color: #F9FAFB;
        }

        body.light h1, body.light h2, body.light h3 {
            color: #111827;
        }

        .container {
            max-width: 1100px;
            margin: 0 auto;
            padding: 24px;
        }

        .header {
            border-bottom: 2px solid var(--border);
            margin-bottom: 24px;
        }

        .meta span {
            margin-right: 16px;
            font-size: 0.9em;
        }

        table {
            width: 100%%;
            border-collapse: collapse;
            margin-bottom: 24px;
        }

        th, td {
            padding: 8px 12px;
            border-bottom: 1px solid var(--border);
            text-align: left;
        }

        .swatch {
            display: inline-block;
            width: 12px;
            height: 12px;
            margin-right: 8px;
            border-radius: 2px;
        }

        .score-high { color: var(--score-high); font-weight: 600; }
        .score-medium { color: var(--score-medium); font-weight: 600; }
        .score-low { color: var(--score-low); font-weight: 600; }

        .card {
            border: 1px solid var(--border);
            border-left: 4px solid var(--border);
            border-radius: 6px;
            padding: 12px 16px;
            margin-bottom: 12px;
        }

        .card dl {
            display: grid;
            grid-template-columns: max-content auto;
            gap: 4px 16px;
            margin: 0;
        }

        .chart img {
            max-width: 100%%;
            border: 1px solid var(--border);
        }

        .footer {
            border-top: 1px solid var(--border);
            padding-top: 12px;
            font-size: 0.85em;
        }
    </style>
`, theme.TextColor, theme.BorderColor, theme.CanvasColor, theme.FontFamily,
		chartstyle.ScoreGreen, chartstyle.ScoreYellow, chartstyle.ScoreRed)
}
