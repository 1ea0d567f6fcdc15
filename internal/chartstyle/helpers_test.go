// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chartstyle

import (
	"encoding/json"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// SCORE TESTS
// =============================================================================

func TestScoreColor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
		class string
	}{
		{1.0, ScoreGreen, "score-high"},
		{0.7, ScoreGreen, "score-high"},
		{0.6999, ScoreYellow, "score-medium"},
		{0.4, ScoreYellow, "score-medium"},
		{0.3999, ScoreRed, "score-low"},
		{0, ScoreRed, "score-low"},
		{-3, ScoreRed, "score-low"},
		{42, ScoreGreen, "score-high"},
		{math.NaN(), ScoreRed, "score-low"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreColor(tt.score), "score %v", tt.score)
		assert.Equal(t, tt.class, ScoreClass(tt.score), "score %v", tt.score)
	}
}

func TestScoreColor_Sweep(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		s := float64(i) / 1000
		got := ScoreColor(s)
		switch {
		case s >= 0.7:
			assert.Equal(t, ScoreGreen, got, "score %v", s)
		case s >= 0.4:
			assert.Equal(t, ScoreYellow, got, "score %v", s)
		default:
			assert.Equal(t, ScoreRed, got, "score %v", s)
		}
	}
}

func TestScoreBucket_String(t *testing.T) {
	assert.Equal(t, "high", BucketFor(0.9).String())
	assert.Equal(t, "medium", BucketFor(0.5).String())
	assert.Equal(t, "low", BucketFor(0.1).String())
}

// =============================================================================
// PALETTE TESTS
// =============================================================================

func TestAlgorithmColor(t *testing.T) {
	assert.Equal(t, "rgb(59, 130, 246)", AlgorithmColor("AES", KindBorder))
	assert.Equal(t, "rgba(59, 130, 246, 0.8)", AlgorithmColor("AES", DefaultColorKind))
	assert.Equal(t, "rgba(168, 85, 247, 0.8)", AlgorithmColor("ChaCha20", KindBackground))
	assert.Equal(t, "rgb(251, 146, 60)", AlgorithmColor("Blowfish", KindBorder))

	assert.Equal(t, "rgba(100, 100, 100, 0.8)", AlgorithmColor("Unknown", KindBackground))
	assert.Equal(t, FallbackColor, AlgorithmColor("aes", KindBackground))
	assert.Equal(t, FallbackColor, AlgorithmColor("DES", ColorKind("hover")))
	assert.Equal(t, FallbackColor, AlgorithmColor("DES", ""))
}

func TestAlgorithmPalettes_IsCopy(t *testing.T) {
	p := AlgorithmPalettes()
	require.Len(t, p, 4)
	p["AES"] = AlgorithmPalette{Background: "x", Border: "y"}
	delete(p, "DES")

	assert.Equal(t, "rgb(59, 130, 246)", AlgorithmColor("AES", KindBorder))
	assert.True(t, HasAlgorithm("DES"))
}

func TestAlgorithms_Order(t *testing.T) {
	assert.Equal(t, []string{"AES", "DES", "Blowfish", "ChaCha20"}, Algorithms())
	for _, name := range Algorithms() {
		assert.True(t, HasAlgorithm(name))
	}
}

// =============================================================================
// FORMAT TESTS
// =============================================================================

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1.2346", FormatNumberPrec(1.23456, 4))
	assert.Equal(t, "2.00", FormatNumber(2))

	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{0, 2, "0.00"},
		{math.Copysign(0, -1), 2, "0.00"},
		{-0.001, 2, "-0.00"},
		{2.5, 0, "3"},
		{0.5, 0, "1"},
		{-2.5, 0, "-3"},
		{1.005, 2, "1.00"},
		{9.999, 2, "10.00"},
		{99.5, 0, "100"},
		{123.456, 1, "123.5"},
		{0.1, 20, "0.10000000000000000555"},
		{1e21, 2, "1e+21"},
		{-1.5e22, 2, "-1.5e+22"},
		{math.NaN(), 2, "NaN"},
		{math.Inf(1), 2, "Infinity"},
		{math.Inf(-1), 2, "-Infinity"},
		{3.14159, -1, "3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumberPrec(tt.v, tt.decimals), "FormatNumberPrec(%v, %d)", tt.v, tt.decimals)
	}
}

func TestFormatNumber_ClampsPrecision(t *testing.T) {
	got := FormatNumberPrec(1, 500)
	assert.Len(t, got, 2+MaxDecimals)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{1.23456, "1.23"},
		{"3.14159", "3.14"},
		{"  7 ", "7.00"},
		{"", "0.00"},
		{"abc", "NaN"},
		{nil, "NaN"},
		{42, "42.00"},
		{int64(-3), "-3.00"},
		{float32(0.5), "0.50"},
		{true, "1.00"},
		{false, "0.00"},
		{"Infinity", "Infinity"},
		{"-Infinity", "-Infinity"},
		{"inf", "NaN"},
		{"infinity", "NaN"},
		{"NaN", "NaN"},
		{"1_000", "NaN"},
		{"1e500", "Infinity"},
		{"-1e500", "-Infinity"},
		{"1e-500", "0.00"},
		{"0x10", "16.00"},
		{"0X1f", "31.00"},
		{"0b101", "5.00"},
		{"0o17", "15.00"},
		{"-0x10", "NaN"},
		{"0x", "NaN"},
		{"0xg", "NaN"},
		{"0x1p-2", "NaN"},
		{".5", "0.50"},
		{"5.", "5.00"},
		{".", "NaN"},
		{"+1.5e1", "15.00"},
		{"1e", "NaN"},
		{"1.2.3", "NaN"},
		{struct{}{}, "NaN"},
		{[]int{1}, "NaN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in, 2), "FormatValue(%#v)", tt.in)
	}
}

// =============================================================================
// OPTIONS TESTS
// =============================================================================

func TestDefaultResponsiveOptions(t *testing.T) {
	o := DefaultResponsiveOptions()
	assert.True(t, o.Responsive)
	assert.True(t, o.MaintainAspectRatio)
	assert.Equal(t, "bottom", o.Plugins.Legend.Position)
	assert.Equal(t, 15, o.Plugins.Legend.Labels.Padding)
	assert.Equal(t, TooltipBackground, o.Plugins.Tooltip.BackgroundColor)
	assert.Equal(t, 1000, o.Animation.Duration)
	assert.Equal(t, "easeInOutQuart", o.Animation.Easing)
}

func TestResponsiveOptions_JSONKeys(t *testing.T) {
	data, err := json.Marshal(DefaultResponsiveOptions())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, true, raw["maintainAspectRatio"])

	plugins := raw["plugins"].(map[string]any)
	tooltip := plugins["tooltip"].(map[string]any)
	assert.Equal(t, float64(8), tooltip["cornerRadius"])
	assert.NotContains(t, tooltip, "LabelDecimals")

	body := tooltip["bodyFont"].(map[string]any)
	assert.NotContains(t, body, "weight")
}

func TestTooltipLabel(t *testing.T) {
	o := DefaultResponsiveOptions()
	y := 0.876543

	assert.Equal(t, "AES: 0.8765", o.TooltipLabel("AES", &y))
	assert.Equal(t, "0.8765", o.TooltipLabel("", &y))
	assert.Equal(t, "AES: ", o.TooltipLabel("AES", nil))
	assert.Equal(t, "", o.TooltipLabel("", nil))
}

// =============================================================================
// COLOR TESTS
// =============================================================================

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#6B7280", color.NRGBA{R: 0x6B, G: 0x72, B: 0x80, A: 255}},
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"rgb(59, 130, 246)", color.NRGBA{R: 59, G: 130, B: 246, A: 255}},
		{"rgba(59, 130, 246, 0.8)", color.NRGBA{R: 59, G: 130, B: 246, A: 204}},
		{" RGBA(0,0,0,0.8) ", color.NRGBA{R: 0, G: 0, B: 0, A: 204}},
		{"rgb(300, -5, 10)", color.NRGBA{R: 255, G: 0, B: 10, A: 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "blue", "#12", "rgb(1,2)", "rgba(1,2,3)", "rgb(a,b,c)", "rgb(1,2,3"} {
		_, err := ParseColor(in)
		assert.ErrorIs(t, err, ErrInvalidColor, in)
	}
}

func TestParseColor_PaletteIsParseable(t *testing.T) {
	for _, name := range Algorithms() {
		for _, kind := range []ColorKind{KindBackground, KindBorder} {
			_, err := ParseColor(AlgorithmColor(name, kind))
			assert.NoError(t, err, "%s/%s", name, kind)
		}
	}
	for _, c := range []string{FallbackColor, TooltipBackground, ScoreGreen, ScoreYellow, ScoreRed} {
		assert.NotPanics(t, func() { MustParseColor(c) })
	}
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, "#3b82f6", Flatten("rgb(59, 130, 246)", "#FFFFFF"))
	assert.Equal(t, "#ffffff", Flatten("rgba(0, 0, 0, 0)", "#FFFFFF"))
	assert.Equal(t, "#111827", Flatten("not-a-color", "#111827"))

	// 80% black over white.
	assert.Equal(t, "#333333", Flatten("rgba(0, 0, 0, 0.8)", "#FFFFFF"))
}
