package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juancuellarsol/ogilvy/internal/table"
)

func TestCSVWriter_WriteTable(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name     string
		filePath string
		bom      bool
		table    *table.Table
		want     string
	}{
		{
			name:     "BOM and accents",
			filePath: filepath.Join(tempDir, "bom.csv"),
			bom:      true,
			table: table.FromRecords(
				[]string{"date", "hora", "Message"},
				[][]string{{"9/5/2025", "6:05:00 PM", "¿qué tal?"}},
			),
			want: "date,hora,Message\n9/5/2025,6:05:00 PM,¿qué tal?\n",
		},
		{
			name:     "quoting in a nested directory",
			filePath: filepath.Join(tempDir, "nested", "plain.csv"),
			table:    table.FromRecords([]string{"Title"}, [][]string{{"uno, dos"}}),
			want:     "Title\n\"uno, dos\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, NewCSVWriter(tt.bom, nil).WriteTable(tt.filePath, tt.table))

			content, err := os.ReadFile(tt.filePath)
			require.NoError(t, err)
			assert.Equal(t, tt.bom, bytes.HasPrefix(content, utf8BOM))
			assert.Equal(t, tt.want, string(bytes.TrimPrefix(content, utf8BOM)))
		})
	}
}

func TestCSVWriter_ReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old,content,longer than the new one\n"), 0644))

	require.NoError(t, NewCSVWriter(false, nil).WriteTable(path, table.FromRecords([]string{"a"}, [][]string{{"1"}})))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n1\n", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no staged files left behind")
}

func TestCSVWriter_StreamAbort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stream.csv")

	stream, err := NewCSVWriter(true, nil).CreateStreamWriter(path, []string{"date", "hora"})
	require.NoError(t, err)
	require.NoError(t, stream.WriteRecord([]string{"9/5/2025", "6:00:00 PM"}))
	stream.Abort()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
