// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeranaias/cipherchart/internal/util"
)

const (
	// DefaultFilename is used when an export names no file.
	DefaultFilename = "chart.png"

	// PNGMimeType is the media type of every export.
	PNGMimeType = "image/png"
)

// ErrInvalidFilename is returned by DirSink for names that resolve outside
// its directory.
var ErrInvalidFilename = errors.New("invalid download filename")

// Sink receives finished downloads.
type Sink interface {
	Download(filename, mimeType string, data []byte) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(filename, mimeType string, data []byte) error

// Download calls f.
func (f SinkFunc) Download(filename, mimeType string, data []byte) error {
	return f(filename, mimeType, data)
}

// DirSink saves downloads into Dir. Only the base name of the requested
// file is used.
type DirSink struct {
	Dir string
}

// Download writes data to Dir/filename atomically.
func (s DirSink) Download(filename, _ string, data []byte) error {
	name := filepath.Base(filepath.Clean(filename))
	if name == "." || name == ".." || name == string(filepath.Separator) || strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := util.AtomicWriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}

// Exporter renders canvases from a board and hands them to a sink.
type Exporter struct {
	board  *Board
	sink   Sink
	logger zerolog.Logger
}

// NewExporter creates an exporter.
func NewExporter(board *Board, sink Sink, logger zerolog.Logger) *Exporter {
	return &Exporter{
		board:  board,
		sink:   sink,
		logger: logger.With().Str("component", "export").Logger(),
	}
}

// ExportChartAsImage downloads the canvas with the given id as a PNG. A
// missing id does nothing. An empty filename means DefaultFilename.
// Failures are logged and otherwise ignored.
func (e *Exporter) ExportChartAsImage(id, filename string) {
	if _, err := e.Export(id, filename); err != nil {
		e.logger.Warn().Err(err).Str("id", id).Msg("chart export failed")
	}
}

// Export is ExportChartAsImage with results: ok is false when no canvas has
// the id, and err reports render or sink failures.
func (e *Exporter) Export(id, filename string) (ok bool, err error) {
	c, found := e.board.Lookup(id)
	if !found {
		e.logger.Debug().Str("id", id).Msg("no canvas to export")
		return false, nil
	}
	if filename == "" {
		filename = DefaultFilename
	}

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return true, err
	}
	if e.sink == nil {
		return true, nil
	}
	if err := e.sink.Download(filename, PNGMimeType, buf.Bytes()); err != nil {
		return true, fmt.Errorf("failed to download %s: %w", filename, err)
	}

	e.logger.Info().
		Str("id", id).
		Str("filename", filename).
		Int("bytes", buf.Len()).
		Msg("chart exported")
	return true, nil
}
