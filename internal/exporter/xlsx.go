package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/juancuellarsol/ogilvy/internal/table"
)

const defaultSheet = "Sheet1"

// XLSXWriter writes tables as single-sheet workbooks.
type XLSXWriter struct {
	sheet  string
	logger *slog.Logger
}

// NewXLSXWriter creates a workbook writer. An empty sheet name means Sheet1.
func NewXLSXWriter(sheet string, logger *slog.Logger) *XLSXWriter {
	if sheet == "" {
		sheet = defaultSheet
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{sheet: sheet, logger: logger}
}

// WriteTable writes t to filePath, replacing any existing file.
func (w *XLSXWriter) WriteTable(filePath string, t *table.Table) error {
	w.logger.Debug("Writing workbook",
		slog.String("file_path", filePath),
		slog.String("sheet", w.sheet),
		slog.Int("record_count", t.Len()))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if w.sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, w.sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	sw, err := f.NewStreamWriter(w.sheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, name := range t.Columns {
		header[i] = excelize.Cell{StyleID: bold, Value: name}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, r := range t.Rows {
		cells := make([]interface{}, len(t.Columns))
		for j, name := range t.Columns {
			cells[j] = r.Get(name).Interface()
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush workbook: %w", err)
	}
	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
