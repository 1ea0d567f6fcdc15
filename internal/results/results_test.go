// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `[
  {"algorithm": "AES", "S_overall_score": 0.8123, "T_performance": 0.91, "E_security": 0.94,
   "K_key_management": 0.7, "I_integrity": 1, "encryption_time_ms": 0.4211,
   "decryption_time_ms": 0.3127, "total_time_ms": 0.7338, "avg_cpu_percent": 12.5,
   "avg_memory_mb": 0.0312, "entropy": 0.9981, "key_size": 256, "security_level": "High",
   "integrity_check": true, "plaintext_size": 1024, "ciphertext_size": 1040},
  {"algorithm": "DES", "S_overall_score": 0.3512, "key_size": 56, "security_level": "Low",
   "integrity_check": true}
]`

const sampleTOML = `
[[results]]
algorithm = "ChaCha20"
S_overall_score = 0.7731
key_size = 256
security_level = "High"
integrity_check = true

[[results]]
algorithm = "Blowfish"
S_overall_score = 0.5402
key_size = 128
security_level = "Medium"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSONArray(t *testing.T) {
	rs, err := Load(writeFile(t, "results.json", sampleJSON))
	require.NoError(t, err)
	require.Len(t, rs, 2)

	aes := rs[0]
	assert.Equal(t, "AES", aes.Algorithm)
	assert.InDelta(t, 0.8123, aes.OverallScore, 1e-9)
	assert.InDelta(t, 0.7338, aes.TotalTimeMs, 1e-9)
	assert.Equal(t, 256, aes.KeySize)
	assert.Equal(t, "High", aes.SecurityLevel)
	assert.True(t, aes.IntegrityCheck)
	assert.Equal(t, 1040, aes.CiphertextSize)
}

func TestLoad_JSONEnvelope(t *testing.T) {
	rs, err := Load(writeFile(t, "out.JSON", `{"results": `+sampleJSON+`}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"AES", "DES"}, Algorithms(rs))
}

func TestLoad_TOML(t *testing.T) {
	rs, err := Load(writeFile(t, "results.toml", sampleTOML))
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, "ChaCha20", rs[0].Algorithm)
	assert.Equal(t, "Medium", rs[1].SecurityLevel)
	assert.False(t, rs[1].IntegrityCheck)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "results.csv", "algorithm\nAES\n"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(writeFile(t, "bad.json", `[{"algorithm": }]`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.toml", `[[results]`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "blank.json", `[{"algorithm": "  "}]`))
	assert.ErrorIs(t, err, ErrEmptyAlgorithm)
}

func TestParse_FormatWithoutDot(t *testing.T) {
	rs, err := Parse([]byte(`[]`), "json")
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestBest(t *testing.T) {
	_, ok := Best(nil)
	assert.False(t, ok)

	rs := []Result{
		{Algorithm: "DES", OverallScore: 0.35},
		{Algorithm: "AES", OverallScore: 0.81},
		{Algorithm: "ChaCha20", OverallScore: 0.81},
	}
	best, ok := Best(rs)
	require.True(t, ok)
	assert.Equal(t, "AES", best.Algorithm)

	best, ok = Best([]Result{{Algorithm: "X", OverallScore: -1}})
	require.True(t, ok)
	assert.Equal(t, "X", best.Algorithm)
}

func TestSortedByScore(t *testing.T) {
	rs := []Result{
		{Algorithm: "DES", OverallScore: 0.35},
		{Algorithm: "AES", OverallScore: 0.81},
		{Algorithm: "Blowfish", OverallScore: 0.54},
		{Algorithm: "ChaCha20", OverallScore: 0.81},
	}
	sorted := SortedByScore(rs)

	assert.Equal(t, []string{"AES", "ChaCha20", "Blowfish", "DES"}, Algorithms(sorted))
	assert.Equal(t, "DES", rs[0].Algorithm, "input must not be reordered")
}
