// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package themewatch turns outside theme signals into class changes on a
// document root: an appearance preferences file and the terminal's
// background color.
package themewatch

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/muesli/termenv"

	"github.com/jeranaias/cipherchart/internal/chartstyle"
	"github.com/jeranaias/cipherchart/internal/dom"
)

// Theme names accepted in preferences and configuration.
const (
	ThemeLight = chartstyle.ModeLight
	ThemeDark  = chartstyle.ModeDark
	ThemeAuto  = "auto"
)

// ErrInvalidTheme is returned for a theme other than light, dark or auto.
var ErrInvalidTheme = errors.New("invalid theme")

// Preferences is the appearance file:
//
//	theme = "dark"          # light | dark | auto
//	classes = ["compact"]   # extra root classes
type Preferences struct {
	Theme   string   `toml:"theme"`
	Classes []string `toml:"classes"`
}

// DefaultPreferences follows the terminal with no extra classes.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeAuto}
}

// ParseTheme normalizes a theme name. Empty means auto.
func ParseTheme(s string) (string, error) {
	switch t := strings.ToLower(strings.TrimSpace(s)); t {
	case "":
		return ThemeAuto, nil
	case ThemeLight, ThemeDark, ThemeAuto:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

// LoadPreferences reads and validates a preferences file.
func LoadPreferences(path string) (Preferences, error) {
	var p Preferences
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Preferences{}, fmt.Errorf("failed to parse preferences: %w", err)
	}
	theme, err := ParseTheme(p.Theme)
	if err != nil {
		return Preferences{}, err
	}
	p.Theme = theme
	return p, nil
}

// =============================================================================
// DETECTION
// =============================================================================

// Detector reports whether the surrounding terminal has a dark background.
type Detector interface {
	HasDarkBackground() bool
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func() bool

// HasDarkBackground calls f.
func (f DetectorFunc) HasDarkBackground() bool { return f() }

// TerminalDetector queries the terminal through termenv. A nil Output means
// the process's stdout.
type TerminalDetector struct {
	Output *termenv.Output
}

// HasDarkBackground asks the terminal for its background color.
func (d TerminalDetector) HasDarkBackground() bool {
	if d.Output == nil {
		return termenv.HasDarkBackground()
	}
	return d.Output.HasDarkBackground()
}

// ResolveDark reports whether theme selects dark mode. Auto defers to the
// detector and is light without one.
func ResolveDark(theme string, detector Detector) bool {
	switch theme {
	case ThemeDark:
		return true
	case ThemeAuto:
		return detector != nil && detector.HasDarkBackground()
	default:
		return false
	}
}

// ClassesFor returns the root class list for p. The dark marker is governed
// only by the theme; a "dark" entry in p.Classes is ignored.
func ClassesFor(p Preferences, detector Detector) []string {
	var out []string
	if ResolveDark(p.Theme, detector) {
		out = append(out, dom.DarkClass)
	}
	for _, c := range p.Classes {
		c = strings.TrimSpace(c)
		if c == "" || c == dom.DarkClass || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Apply writes classes to the root's class attribute. The write happens even
// when the value is unchanged, so observers always see it.
func Apply(doc *dom.Document, classes []string) {
	doc.Root().SetAttribute(dom.ClassAttribute, strings.Join(classes, " "))
}
