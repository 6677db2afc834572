package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/juancuellarsol/ogilvy/internal/table"
)

// utf8BOM lets Excel detect UTF-8 when it opens the file directly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes tables as comma separated files. Output is staged in a
// temporary file next to the target and renamed on success, so a failed
// export never leaves a truncated file behind.
type CSVWriter struct {
	bom    bool
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer. With bom set every file starts with a
// UTF-8 byte order mark.
func NewCSVWriter(bom bool, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{bom: bom, logger: logger}
}

// WriteTable writes t to filePath. Missing cells are written as empty
// fields and numbers in their shortest form.
func (w *CSVWriter) WriteTable(filePath string, t *table.Table) error {
	w.logger.Debug("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", t.Len()))

	stream, err := w.CreateStreamWriter(filePath, t.Columns)
	if err != nil {
		return err
	}

	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, col := range t.Columns {
			record[j] = row.Get(col).Text()
		}
		if err := stream.WriteRecord(record); err != nil {
			stream.Abort()
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	return stream.Close()
}

// StreamWriter writes records one at a time into a staged file.
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
	target string
}

// CreateStreamWriter stages a new CSV file for filePath and writes the
// header row. Close publishes it; Abort discards it.
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	s := &StreamWriter{file: file, writer: csv.NewWriter(file), target: filePath}

	if w.bom {
		if _, err := file.Write(utf8BOM); err != nil {
			s.Abort()
			return nil, fmt.Errorf("failed to write BOM: %w", err)
		}
	}
	if len(headers) > 0 {
		if err := s.writer.Write(headers); err != nil {
			s.Abort()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}
	return s, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes the stream and moves it into place.
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.Abort()
		return err
	}
	if err := s.file.Close(); err != nil {
		os.Remove(s.file.Name())
		return err
	}
	if err := os.Rename(s.file.Name(), s.target); err != nil {
		os.Remove(s.file.Name())
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// Abort discards the staged file.
func (s *StreamWriter) Abort() {
	s.file.Close()
	os.Remove(s.file.Name())
}
