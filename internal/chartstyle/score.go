// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chartstyle

// Score thresholds. Scores are expected in [0,1] but are not validated.
const (
	ScoreHighThreshold   = 0.7
	ScoreMediumThreshold = 0.4
)

// ScoreBucket classifies a score into one of three color bands.
type ScoreBucket int

const (
	ScoreLow ScoreBucket = iota
	ScoreMedium
	ScoreHigh
)

// BucketFor returns the band for score. NaN lands in ScoreLow.
func BucketFor(score float64) ScoreBucket {
	if score >= ScoreHighThreshold {
		return ScoreHigh
	}
	if score >= ScoreMediumThreshold {
		return ScoreMedium
	}
	return ScoreLow
}

// Color returns the hex color for the band.
func (b ScoreBucket) Color() string {
	switch b {
	case ScoreHigh:
		return ScoreGreen
	case ScoreMedium:
		return ScoreYellow
	default:
		return ScoreRed
	}
}

// Class returns the CSS class used by HTML reports.
func (b ScoreBucket) Class() string {
	switch b {
	case ScoreHigh:
		return "score-high"
	case ScoreMedium:
		return "score-medium"
	default:
		return "score-low"
	}
}

// String returns a short label.
func (b ScoreBucket) String() string {
	switch b {
	case ScoreHigh:
		return "high"
	case ScoreMedium:
		return "medium"
	default:
		return "low"
	}
}

// ScoreColor maps a score to green, yellow or red.
func ScoreColor(score float64) string {
	return BucketFor(score).Color()
}

// ScoreClass maps a score to score-high, score-medium or score-low.
func ScoreClass(score float64) string {
	return BucketFor(score).Class()
}
