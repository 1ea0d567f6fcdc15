// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
)

// =============================================================================
// JSON OUTPUT
// =============================================================================

// JSONResponse is the envelope for --json output.
type JSONResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Error     *string     `json:"error"`
	Timestamp string      `json:"timestamp"`
	Command   string      `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      nil,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// reportedError is an error already written as a JSON envelope. Main does
// not print it again.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// isReported reports whether err was already written as a JSON envelope.
func isReported(err error) bool {
	var rep *reportedError
	return errors.As(err, &rep)
}

// writeJSONError writes err as a failed JSONResponse and returns it marked
// as reported. A write failure is joined to err.
func writeJSONError(w io.Writer, command string, err error) error {
	if err == nil || isReported(err) {
		return err
	}
	if werr := writeRawJSON(w, NewJSONErrorResponse(command, err)); werr != nil {
		return errors.Join(err, werr)
	}
	return &reportedError{err: err}
}

// writeJSON writes data wrapped in a JSONResponse. Output to a color
// terminal is syntax highlighted.
func writeJSON(w io.Writer, command string, data interface{}) error {
	return writeRawJSON(w, NewJSONResponse(command, data))
}

// writeRawJSON writes v as indented JSON with no envelope.
func writeRawJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	text := string(out) + "\n"
	if isTerminalWriter(w) && ColorsEnabled() {
		text = highlight(text, "json")
	}
	_, err = io.WriteString(w, text)
	return err
}

// =============================================================================
// SYNTAX HIGHLIGHTING
// =============================================================================

// highlight applies terminal syntax highlighting, returning code unchanged
// on any failure.
func highlight(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders markdown for terminal display using the style that
// matches dark. Returns content unchanged if rendering fails.
func renderMarkdown(content string, dark bool, width int) string {
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}
