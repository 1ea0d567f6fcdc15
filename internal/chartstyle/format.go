// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chartstyle

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

const (
	// DefaultDecimals is the precision used by FormatNumber.
	DefaultDecimals = 2

	// MaxDecimals is the largest precision accepted; larger values are clamped.
	MaxDecimals = 100

	// exactDigits is enough fractional digits to print any float64 exactly.
	exactDigits = 1100

	// exponentThreshold is the magnitude above which fixed notation is abandoned.
	exponentThreshold = 1e21
)

// FormatNumber formats v with two decimals.
func FormatNumber(v float64) string {
	return FormatNumberPrec(v, DefaultDecimals)
}

// FormatNumberPrec formats v with a fixed number of decimals. It is not
// locale-aware. Exact halfway values round away from zero, NaN formats as
// "NaN", infinities as "Infinity"/"-Infinity", and magnitudes of 1e21 or more
// use exponent notation.
func FormatNumberPrec(v float64, decimals int) string {
	decimals = clampDecimals(decimals)

	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	if math.Abs(v) >= exponentThreshold {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	// -0 formats without a sign; any other negative keeps it even if it rounds to zero.
	if v < 0 {
		return "-" + toFixed(-v, decimals)
	}
	return toFixed(math.Abs(v), decimals)
}

// FormatValue coerces v to a number and formats it like FormatNumberPrec.
// Values that cannot be read as a number, nil included, format as "NaN".
func FormatValue(v any, decimals int) string {
	return FormatNumberPrec(toNumber(v), decimals)
}

func toNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		return x
	case string:
		return parseNumber(x)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN()
	}
	return f
}

// parseNumber reads s with the string rules of JavaScript's Number():
// decimal literals, unsigned 0x/0o/0b integers and the Infinity spellings.
// Anything else is NaN. Out-of-range literals become infinities.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		if base := radixBase(s[1]); base != 0 {
			n, ok := new(big.Int).SetString(s[2:], base)
			if !ok || strings.ContainsAny(s[2:], "+-_") {
				return math.NaN()
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f
		}
	}

	if !isDecimalLiteral(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

func radixBase(c byte) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

// isDecimalLiteral matches [+-] digits [. digits] [(e|E) [+-] digits] with
// at least one mantissa digit.
func isDecimalLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func clampDecimals(decimals int) int {
	if decimals < 0 {
		return 0
	}
	if decimals > MaxDecimals {
		return MaxDecimals
	}
	return decimals
}

// toFixed rounds a non-negative finite value half-up on its exact binary
// value, so 2.5 becomes "3" while 1.005 stays "1.00".
func toFixed(abs float64, decimals int) string {
	exact := new(big.Float).SetFloat64(abs).Text('f', exactDigits)
	intPart, frac, _ := strings.Cut(exact, ".")

	digits := intPart + frac[:decimals]
	if frac[decimals] >= '5' {
		digits = incrementDigits(digits)
	}

	if decimals == 0 {
		return digits
	}
	split := len(digits) - decimals
	return digits[:split] + "." + digits[split:]
}

// incrementDigits adds one to a string of decimal digits.
func incrementDigits(digits string) string {
	b := []byte(digits)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}
