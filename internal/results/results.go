// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package results loads per-algorithm audit records produced by an external
// analyzer. Field names follow the analyzer's output so files can be passed
// through unchanged.
package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrUnsupportedFormat is returned for files that are neither JSON nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported results format")

// ErrEmptyAlgorithm is returned by Validate for a record with no algorithm name.
var ErrEmptyAlgorithm = errors.New("result has empty algorithm name")

// Result is one algorithm's audit record.
type Result struct {
	Algorithm string `json:"algorithm" toml:"algorithm"`

	OverallScore  float64 `json:"S_overall_score" toml:"S_overall_score"`
	Performance   float64 `json:"T_performance" toml:"T_performance"`
	Security      float64 `json:"E_security" toml:"E_security"`
	KeyManagement float64 `json:"K_key_management" toml:"K_key_management"`
	Integrity     float64 `json:"I_integrity" toml:"I_integrity"`

	EncryptionTimeMs float64 `json:"encryption_time_ms" toml:"encryption_time_ms"`
	DecryptionTimeMs float64 `json:"decryption_time_ms" toml:"decryption_time_ms"`
	TotalTimeMs      float64 `json:"total_time_ms" toml:"total_time_ms"`
	AvgCPUPercent    float64 `json:"avg_cpu_percent" toml:"avg_cpu_percent"`
	AvgMemoryMB      float64 `json:"avg_memory_mb" toml:"avg_memory_mb"`
	Entropy          float64 `json:"entropy" toml:"entropy"`

	KeySize        int    `json:"key_size" toml:"key_size"`
	SecurityLevel  string `json:"security_level" toml:"security_level"`
	IntegrityCheck bool   `json:"integrity_check" toml:"integrity_check"`

	PlaintextSize  int `json:"plaintext_size" toml:"plaintext_size"`
	CiphertextSize int `json:"ciphertext_size" toml:"ciphertext_size"`
}

// envelope is the object form of a results file.
type envelope struct {
	Results []Result `json:"results" toml:"results"`
}

// Load reads results from path. The format is chosen by extension:
// .json holds an array or {"results": [...]}, .toml holds [[results]] tables.
func Load(path string) ([]Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}

	rs, err := Parse(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rs, nil
}

// Parse decodes results in the given format (".json" or ".toml", the dot
// is optional) and validates them.
func Parse(data []byte, format string) ([]Result, error) {
	var rs []Result
	var err error

	switch strings.TrimPrefix(format, ".") {
	case "json":
		rs, err = parseJSON(data)
	case "toml":
		rs, err = parseTOML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	if err := Validate(rs); err != nil {
		return nil, err
	}
	return rs, nil
}

func parseJSON(data []byte) ([]Result, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var rs []Result
		if err := json.Unmarshal(trimmed, &rs); err != nil {
			return nil, fmt.Errorf("invalid JSON results: %w", err)
		}
		return rs, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("invalid JSON results: %w", err)
	}
	return env.Results, nil
}

func parseTOML(data []byte) ([]Result, error) {
	var env envelope
	if _, err := toml.Decode(string(data), &env); err != nil {
		return nil, fmt.Errorf("invalid TOML results: %w", err)
	}
	return env.Results, nil
}

// Validate checks that every record names its algorithm.
func Validate(rs []Result) error {
	for i, r := range rs {
		if strings.TrimSpace(r.Algorithm) == "" {
			return fmt.Errorf("result %d: %w", i, ErrEmptyAlgorithm)
		}
	}
	return nil
}

// Best returns the record with the highest overall score. The first record
// wins ties. ok is false for an empty slice.
func Best(rs []Result) (best Result, ok bool) {
	for i, r := range rs {
		if i == 0 || r.OverallScore > best.OverallScore {
			best = r
		}
	}
	return best, len(rs) > 0
}

// SortedByScore returns a copy ordered by overall score, highest first.
// Records with equal scores keep their input order.
func SortedByScore(rs []Result) []Result {
	out := slices.Clone(rs)
	slices.SortStableFunc(out, func(a, b Result) int {
		switch {
		case a.OverallScore > b.OverallScore:
			return -1
		case a.OverallScore < b.OverallScore:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Algorithms returns the algorithm names in input order.
func Algorithms(rs []Result) []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Algorithm
	}
	return names
}
