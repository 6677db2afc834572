package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/juancuellarsol/ogilvy/internal/errors"
	"github.com/juancuellarsol/ogilvy/internal/table"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestReadFile_CSV(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		opts    ReadOptions
		columns []string
		first   []string
		rows    int
	}{
		{
			name:    "utf8 bom and comma",
			data:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("Created Time,Message\n9/5/2025 6:05:00 p.m.,hola\n")...),
			columns: []string{"Created Time", "Message"},
			first:   []string{"9/5/2025 6:05:00 p.m.", "hola"},
			rows:    1,
		},
		{
			name:    "semicolon with quoted separators",
			data:    []byte("Date;Time;Title\n22.09.2025;06:28;\"uno; dos\"\n"),
			columns: []string{"Date", "Time", "Title"},
			first:   []string{"22.09.2025", "06:28", "uno; dos"},
			rows:    1,
		},
		{
			name:    "windows-1252 accents",
			data:    []byte("Fecha de creaci\xf3n,Autor\n9/5/2025,Mu\xf1oz\n"),
			columns: []string{"Fecha de creación", "Autor"},
			first:   []string{"9/5/2025", "Muñoz"},
			rows:    1,
		},
		{
			name:    "banner skipped",
			data:    []byte("Report generated 2025-09-30\n\nCreated Time,Message\n9/5/2025,hola\n,\n9/6/2025,chao\n"),
			opts:    ReadOptions{SkipRows: 1, Header: 0},
			columns: []string{"Created Time", "Message"},
			first:   []string{"9/5/2025", "hola"},
			rows:    2,
		},
		{
			name:    "header index",
			data:    []byte("banner\nCreated Time,Message\n9/5/2025,hola\n"),
			opts:    ReadOptions{Header: 1},
			columns: []string{"Created Time", "Message"},
			first:   []string{"9/5/2025", "hola"},
			rows:    1,
		},
		{
			name:    "no header",
			data:    []byte("9/5/2025,hola\n9/6/2025,chao,extra\n"),
			opts:    ReadOptions{Header: -1},
			columns: []string{"0", "1", "2"},
			first:   []string{"9/5/2025", "hola", ""},
			rows:    2,
		},
		{
			name:    "duplicate and empty headers",
			data:    []byte("Views,Views,\n1,2,3\n"),
			columns: []string{"Views", "Views.1", "Unnamed: 2"},
			first:   []string{"1", "2", "3"},
			rows:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "export.csv", tt.data)

			tbl, err := NewReader(nil).ReadFile(path, tt.opts)
			require.NoError(t, err)

			assert.Equal(t, tt.columns, tbl.Columns)
			require.Equal(t, tt.rows, tbl.Len())
			_, records := tbl.Records()
			assert.Equal(t, tt.first, records[0])
		})
	}
}

func TestReadFile_EmptyCSV(t *testing.T) {
	path := writeFile(t, "empty.csv", []byte(""))

	tbl, err := NewReader(nil).ReadFile(path, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
}

func TestReadFile_HeaderPastEnd(t *testing.T) {
	path := writeFile(t, "short.csv", []byte("a,b\n"))

	_, err := NewReader(nil).ReadFile(path, ReadOptions{Header: 3})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeRead, apperrors.TypeOf(err))
}

func TestReadFile_Unsupported(t *testing.T) {
	path := writeFile(t, "export.ods", []byte("x"))

	_, err := NewReader(nil).ReadFile(path, ReadOptions{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeUnsupportedFormat, apperrors.TypeOf(err))
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := NewReader(nil).ReadFile(filepath.Join(t.TempDir(), "nope.csv"), ReadOptions{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeRead, apperrors.TypeOf(err))
}

func TestReadFile_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tubular.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Tubular export"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Published_Date", "Video_Title", "Views", "Code"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{
		time.Date(2025, 9, 10, 18, 0, 0, 0, time.UTC), "Hola mundo", 1500, "00123",
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"21/09/2025 8:00:00 AM", "Chao", 12.5}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := NewReader(nil).ReadFile(path, ReadOptions{SkipRows: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"Published_Date", "Video_Title", "Views", "Code"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())

	stamp := tbl.Rows[0].Get("Published_Date")
	assert.Equal(t, table.KindNumber, stamp.Kind())
	serial, _ := stamp.Float()
	assert.InDelta(t, 45910.75, serial, 1e-6)

	assert.Equal(t, table.KindNumber, tbl.Rows[0].Get("Views").Kind())
	assert.Equal(t, "1500", tbl.Rows[0].Get("Views").Text())
	assert.Equal(t, table.KindString, tbl.Rows[0].Get("Code").Kind())
	assert.Equal(t, "00123", tbl.Rows[0].Get("Code").Text())
	assert.Equal(t, "21/09/2025 8:00:00 AM", tbl.Rows[1].Get("Published_Date").Text())
	assert.True(t, tbl.Rows[1].Get("Code").IsMissing())
}

func TestReadFile_LegacyWorkbookError(t *testing.T) {
	assert.True(t, Supported(".XLS"))
	path := writeFile(t, "legacy.xls", []byte("Created Time,Message\n9/5/2025,hola\n"))

	_, err := NewReader(nil).ReadFile(path, ReadOptions{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeRead, apperrors.TypeOf(err))
	assert.Contains(t, err.Error(), "failed to open workbook")
}

type fakeGrid [][]string

func (g fakeGrid) rowCount() int      { return len(g) }
func (g fakeGrid) row(i int) []string { return g[i] }

func TestGridValues(t *testing.T) {
	grid := fakeGrid{
		{"Tubular export"},
		{"Published_Date", "Video_Title", "Views", "Code"},
		nil,
		{"9/10/25 18:00", "Hola mundo", "1500", "00123"},
		{"", "Chao", "12.5"},
	}

	tbl, err := build(gridValues(grid), ReadOptions{SkipRows: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"Published_Date", "Video_Title", "Views", "Code"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, table.KindString, tbl.Rows[0].Get("Published_Date").Kind())
	assert.Equal(t, table.KindNumber, tbl.Rows[0].Get("Views").Kind())
	assert.Equal(t, "00123", tbl.Rows[0].Get("Code").Text())
	assert.True(t, tbl.Rows[1].Get("Published_Date").IsMissing())
	assert.Equal(t, "12.5", tbl.Rows[1].Get("Views").Text())
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ',', SniffDelimiter([]byte("a,b,c\n1;2")))
	assert.Equal(t, ';', SniffDelimiter([]byte("a;b;\"c,d,e\"\n")))
	assert.Equal(t, '\t', SniffDelimiter([]byte("a\tb\tc")))
	assert.Equal(t, ',', SniffDelimiter([]byte("single")))
}

func TestDecode(t *testing.T) {
	out, err := Decode([]byte{0xFF, 0xFE, 'h', 0, 'i', 0})
	require.NoError(t, err)
	assert.Equal(t, "hi", string(out))

	out, err = Decode([]byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, "plain", string(out))
}
