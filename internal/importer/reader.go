package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	apperrors "github.com/juancuellarsol/ogilvy/internal/errors"
	"github.com/juancuellarsol/ogilvy/internal/table"
)

// ReadOptions controls how the raw rows become a table.
type ReadOptions struct {
	// SkipRows drops leading rows before the header is looked up.
	SkipRows int
	// Header is the index of the header row after skipping. Negative
	// means there is no header.
	Header int
	// Sheet selects a workbook sheet. Empty means the first sheet.
	Sheet string
}

// Reader reads supported files.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a reader.
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger.With("component", "importer")}
}

// Supported reports whether ext (with dot) can be read.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".csv", ".xlsx", ".xlsm", ".xls":
		return true
	}
	return false
}

// ReadFile reads path by extension.
func (r *Reader) ReadFile(path string, opts ReadOptions) (*table.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(ext) {
		return nil, apperrors.NewUnsupportedFormatError(ext)
	}

	var rows [][]table.Value
	var err error
	switch ext {
	case ".csv":
		rows, err = r.readCSV(path)
	case ".xls":
		rows, err = r.readLegacyWorkbook(path, opts.Sheet)
	default:
		rows, err = r.readWorkbook(path, opts.Sheet)
	}
	if err != nil {
		return nil, apperrors.NewReadError(path, err)
	}

	t, err := build(rows, opts)
	if err != nil {
		return nil, apperrors.NewReadError(path, err)
	}
	r.logger.Info("file read",
		slog.String("file", path),
		slog.Int("rows", t.Len()),
		slog.Int("columns", len(t.Columns)))
	return t, nil
}

func (r *Reader) readWorkbook(path, sheet string) ([][]table.Value, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	r.logger.Debug("sheet loaded", slog.String("sheet", sheet), slog.Int("rows", len(raw)))

	rows := make([][]table.Value, len(raw))
	for i, rec := range raw {
		row := make([]table.Value, len(rec))
		for j, cell := range rec {
			row[j] = cellValue(cell)
		}
		rows[i] = row
	}
	return rows, nil
}

var numericCell = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][-+]?[0-9]+)?$`)

// cellValue keeps canonical numbers numeric so that serial dates and metric
// columns survive as numbers. Text such as "00123" stays text.
func cellValue(s string) table.Value {
	if numericCell.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return table.Number(f)
		}
	}
	return table.String(s)
}

func (r *Reader) readCSV(path string) ([][]table.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data, err = Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = SniffDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]table.Value
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", len(rows)+1, err)
		}
		row := make([]table.Value, len(rec))
		for i, cell := range rec {
			row[i] = table.String(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Decode returns UTF-8 text without BOM. UTF-16 input needs a BOM; bytes
// that are not valid UTF-8 are read as Windows-1252.
func Decode(data []byte) ([]byte, error) {
	var fallback transform.Transformer = encoding.Nop.NewDecoder()
	if !utf8.Valid(data) {
		fallback = charmap.Windows1252.NewDecoder()
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(fallback), data)
	return out, err
}

// SniffDelimiter picks ',', ';' or tab from the first line.
func SniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := countOutsideQuotes(line, byte(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func countOutsideQuotes(line []byte, sep byte) int {
	n := 0
	quoted := false
	for _, b := range line {
		switch {
		case b == '"':
			quoted = !quoted
		case b == sep && !quoted:
			n++
		}
	}
	return n
}

// build applies SkipRows and Header and turns rows into a table.
func build(rows [][]table.Value, opts ReadOptions) (*table.Table, error) {
	if opts.SkipRows < 0 {
		return nil, fmt.Errorf("skiprows must not be negative")
	}
	if opts.SkipRows >= len(rows) {
		rows = nil
	} else {
		rows = rows[opts.SkipRows:]
	}

	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}

	var header []string
	var body [][]table.Value
	if opts.Header < 0 {
		header = make([]string, width)
		for i := range header {
			header[i] = strconv.Itoa(i)
		}
		body = rows
	} else {
		if opts.Header >= len(rows) {
			if len(rows) == 0 && opts.Header == 0 {
				return table.New(nil), nil
			}
			return nil, fmt.Errorf("header row %d is past the end of the data (%d rows)", opts.Header, len(rows))
		}
		raw := make([]string, width)
		for i, v := range rows[opts.Header] {
			raw[i] = v.Text()
		}
		header = table.CleanHeaders(raw)
		body = rows[opts.Header+1:]
	}

	t := table.New(header)
	for _, rec := range body {
		if blank(rec) {
			continue
		}
		row := make(table.Row, len(header))
		for i, name := range header {
			if i < len(rec) && !rec[i].IsMissing() {
				row[name] = rec[i]
			}
		}
		t.Append(row)
	}
	return t, nil
}

func blank(rec []table.Value) bool {
	for _, v := range rec {
		if !v.IsMissing() {
			return false
		}
	}
	return true
}
