// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/cipherchart/internal/config"
)

// newLogger builds the process logger. Console output is meant for people,
// json output for log collectors.
func newLogger(w io.Writer, lc config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if lc.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
			NoColor:    !ColorsEnabled(),
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
