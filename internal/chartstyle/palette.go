// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chartstyle

// ColorKind selects which half of an algorithm's palette entry to return.
type ColorKind string

const (
	KindBackground ColorKind = "background"
	KindBorder     ColorKind = "border"

	// DefaultColorKind is the kind callers use when they have no preference.
	DefaultColorKind = KindBackground
)

// AlgorithmPalette is the fill/stroke pair for one cipher.
type AlgorithmPalette struct {
	Background string `json:"background"`
	Border     string `json:"border"`
}

// algorithmOrder fixes iteration order for listings and series colors.
var algorithmOrder = []string{"AES", "DES", "Blowfish", "ChaCha20"}

var algorithmColors = map[string]AlgorithmPalette{
	"AES": {
		Background: "rgba(59, 130, 246, 0.8)",
		Border:     "rgb(59, 130, 246)",
	},
	"DES": {
		Background: "rgba(239, 68, 68, 0.8)",
		Border:     "rgb(239, 68, 68)",
	},
	"Blowfish": {
		Background: "rgba(251, 146, 60, 0.8)",
		Border:     "rgb(251, 146, 60)",
	},
	"ChaCha20": {
		Background: "rgba(168, 85, 247, 0.8)",
		Border:     "rgb(168, 85, 247)",
	},
}

// AlgorithmColor returns the palette color of the given kind for an
// algorithm. Names are matched exactly. An unknown name or kind (including
// the empty kind) returns FallbackColor.
func AlgorithmColor(name string, kind ColorKind) string {
	p, ok := algorithmColors[name]
	if !ok {
		return FallbackColor
	}
	switch kind {
	case KindBackground:
		return p.Background
	case KindBorder:
		return p.Border
	default:
		return FallbackColor
	}
}

// AlgorithmPalettes returns a copy of the full palette.
func AlgorithmPalettes() map[string]AlgorithmPalette {
	out := make(map[string]AlgorithmPalette, len(algorithmColors))
	for name, p := range algorithmColors {
		out[name] = p
	}
	return out
}

// Algorithms lists the palette's algorithm names in display order.
func Algorithms() []string {
	out := make([]string, len(algorithmOrder))
	copy(out, algorithmOrder)
	return out
}

// HasAlgorithm reports whether name has its own palette entry.
func HasAlgorithm(name string) bool {
	_, ok := algorithmColors[name]
	return ok
}
