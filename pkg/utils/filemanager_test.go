package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOutputFileName(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 5, 0, time.UTC)

	tests := []struct {
		name   string
		format string
		ext    string
		params map[string]string
		want   string
	}{
		{"default format", "{name}_export_{timestamp}", "csv", map[string]string{"name": "tracker"}, "tracker_export_20260301_093005.csv"},
		{"date and time", "{date}-{time}", ".xlsx", nil, "20260301-093005.xlsx"},
		{"extension already present", "report.CSV", "csv", nil, "report.CSV"},
		{"no extension", "{name}", "", map[string]string{"name": "x"}, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateOutputFileName(tt.format, tt.ext, now, tt.params))
		})
	}
}

func TestGenerateOutputFileName_UUID(t *testing.T) {
	name := GenerateOutputFileName("{uuid}", "", time.Now(), nil)

	_, err := uuid.Parse(name)
	assert.NoError(t, err)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "tracker", BaseName("/data/in/tracker.xlsx"))
	assert.Equal(t, "po.list", BaseName("po.list.csv"))
}

func TestEnsureDirAndFileExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	assert.False(t, FileExists(dir), "directories are not files")

	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))
	assert.True(t, FileExists(path))

	size, err := GetFileSize(path)
	require.NoError(t, err)
	assert.EqualValues(t, 3, size)

	_, err = GetFileSize(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
