// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/cipherchart/internal/chartstyle"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports reports to GitHub-flavored Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a report to Markdown. The chart image is omitted.
func (e *MarkdownExporter) Export(r *Report) ([]byte, error) {
	if r == nil {
		return nil, errors.New("report is nil")
	}
	if len(r.Results) == 0 {
		return nil, ErrNoResults
	}

	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(r.Title)))
	sb.WriteString(fmt.Sprintf("id: %s\n", r.ID))
	sb.WriteString(fmt.Sprintf("date: %s\n", r.CreatedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("theme: %s\n", r.Theme.Mode()))
	sb.WriteString("generator: cipherchart\n")
	sb.WriteString("---\n\n")

	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(r.Title)))

	ranked := r.Ranked()
	best := ranked[0]
	sb.WriteString(fmt.Sprintf("**Best algorithm:** %s (S = %s, %s)\n\n",
		escapeCell(best.Algorithm), score(best.OverallScore), chartstyle.BucketFor(best.OverallScore)))

	sb.WriteString("## Comparison\n\n")
	sb.WriteString("| # | Algorithm | S | T | E | K | I | Rating |\n")
	sb.WriteString("|---|---|---:|---:|---:|---:|---:|---|\n")
	for i, r := range ranked {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s | %s | %s |\n",
			i+1,
			escapeCell(r.Algorithm),
			score(r.OverallScore),
			score(r.Performance),
			score(r.Security),
			score(r.KeyManagement),
			score(r.Integrity),
			chartstyle.BucketFor(r.OverallScore)))
	}
	sb.WriteString("\n")

	sb.WriteString("## Performance\n\n")
	sb.WriteString("| Algorithm | Encryption (ms) | Decryption (ms) | CPU (%) | Memory (MB) |\n")
	sb.WriteString("|---|---:|---:|---:|---:|\n")
	for _, r := range ranked {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			escapeCell(r.Algorithm),
			score(r.EncryptionTimeMs),
			score(r.DecryptionTimeMs),
			percent(r.AvgCPUPercent),
			score(r.AvgMemoryMB)))
	}
	sb.WriteString("\n")

	sb.WriteString("## Security\n\n")
	sb.WriteString("| Algorithm | Key size | Entropy | Level | Integrity |\n")
	sb.WriteString("|---|---:|---:|---|---|\n")
	for _, r := range ranked {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s |\n",
			escapeCell(r.Algorithm),
			r.KeySize,
			score(r.Entropy),
			escapeCell(r.SecurityLevel),
			integrityLabel(r.IntegrityCheck)))
	}

	if e.options.IncludeDetails {
		sb.WriteString("\n## Details\n\n")
		for _, r := range ranked {
			sb.WriteString(fmt.Sprintf("### %s\n\n", escapeMarkdown(r.Algorithm)))
			sb.WriteString(fmt.Sprintf("- **Total time**: %s ms\n", score(r.TotalTimeMs)))
			sb.WriteString(fmt.Sprintf("- **Plaintext size**: %d\n", r.PlaintextSize))
			sb.WriteString(fmt.Sprintf("- **Ciphertext size**: %d\n\n", r.CiphertextSize))
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Generated by cipherchart on %s*\n",
		r.CreatedAt.Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeCell makes s safe inside a table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

// escapeYAML escapes special YAML characters in values.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
