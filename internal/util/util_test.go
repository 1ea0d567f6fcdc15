// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		rel  string
		data []byte
	}{
		{"basic", "chart.png", []byte("png bytes")},
		{"nested dirs", filepath.Join("reports", "2025", "audit.html"), []byte("<html></html>")},
		{"empty", "empty.json", []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.rel)
			require.NoError(t, AtomicWriteFile(path, tt.data, 0o644))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.data, got)
		})
	}
}

func TestAtomicWriteFile_OverwritesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, AtomicWriteFile(path, []byte("initial"), 0o644))
	require.NoError(t, AtomicWriteFile(path, []byte("updated"), 0o644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "updated", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAtomicWriteFile_LargeData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.bin")
	data := make([]byte, 1024*1024)
	for i := range data {
		data[i] = byte(i % 256)
	}

	require.NoError(t, AtomicWriteFile(path, data, 0o644))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, got, len(data))
}

func TestAtomicWriteFileWithDir_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	path := filepath.Join(t.TempDir(), "private", "prefs.toml")

	require.NoError(t, AtomicWriteFileWithDir(path, []byte("theme = \"dark\""), 0o600, 0o700))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
}

func TestAtomicWriteFile_ParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := AtomicWriteFile(filepath.Join(blocker, "chart.png"), []byte("x"), 0o644)
	assert.ErrorContains(t, err, "failed to create parent directory")
}

// =============================================================================
// STRING TRUNCATION TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"ChaCha20", 10, "ChaCha20"},
		{"ChaCha20-Poly1305", 10, "ChaCha2..."},
		{"Blowfish", 3, "Blo"},
		{"AES", 0, ""},
		{"AES", -1, ""},
		{"шифрование", 6, "шиф..."},
		{"", 5, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateRunes(tt.in, tt.max), "TruncateRunes(%q, %d)", tt.in, tt.max)
	}
}

func TestTruncateRunesNoEllipsis(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Weekly audit", 6, "Weekly"},
		{"Weekly", 10, "Weekly"},
		{"日本語テキスト", 3, "日本語"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateRunesNoEllipsis(tt.in, tt.max), "TruncateRunesNoEllipsis(%q, %d)", tt.in, tt.max)
	}
}
