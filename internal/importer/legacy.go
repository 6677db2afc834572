package importer

import (
	"fmt"
	"log/slog"

	"github.com/extrame/xls"

	"github.com/juancuellarsol/ogilvy/internal/table"
)

// cellGrid is the row view of a legacy worksheet. Absent rows are nil.
type cellGrid interface {
	rowCount() int
	row(i int) []string
}

type biffSheet struct {
	sheet *xls.WorkSheet
}

func (s biffSheet) rowCount() int {
	return int(s.sheet.MaxRow) + 1
}

func (s biffSheet) row(i int) []string {
	r := s.sheet.Row(i)
	if r == nil {
		return nil
	}
	last := r.LastCol()
	if last <= 0 {
		return nil
	}
	cells := make([]string, last)
	for c := r.FirstCol(); c < last; c++ {
		cells[c] = r.Col(c)
	}
	return cells
}

// readLegacyWorkbook reads a BIFF8 (.xls) workbook. The parser panics on
// some malformed files, so panics are reported as read errors.
func (r *Reader) readLegacyWorkbook(path, sheet string) (rows [][]table.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			rows, err = nil, fmt.Errorf("malformed legacy workbook: %v", p)
		}
	}()

	wb, closer, err := xls.OpenWithCloser(path, "utf-8")
	if closer != nil {
		defer closer.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if wb == nil {
		return nil, fmt.Errorf("failed to open workbook: no workbook stream")
	}

	ws, err := legacySheet(wb, sheet)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("legacy sheet loaded", slog.String("sheet", ws.Name), slog.Int("rows", int(ws.MaxRow)+1))
	return gridValues(biffSheet{sheet: ws}), nil
}

func legacySheet(wb *xls.WorkBook, name string) (*xls.WorkSheet, error) {
	n := wb.NumSheets()
	if n == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	for i := 0; i < n; i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		if name == "" || ws.Name == name {
			return ws, nil
		}
	}
	if name == "" {
		return nil, fmt.Errorf("workbook has no readable sheets")
	}
	return nil, fmt.Errorf("sheet %q not found", name)
}

// gridValues converts a grid with the same cell rules as OOXML workbooks.
func gridValues(g cellGrid) [][]table.Value {
	n := g.rowCount()
	rows := make([][]table.Value, 0, n)
	for i := 0; i < n; i++ {
		rec := g.row(i)
		row := make([]table.Value, len(rec))
		for j, cell := range rec {
			row[j] = cellValue(cell)
		}
		rows = append(rows, row)
	}
	return rows
}
