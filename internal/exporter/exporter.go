package exporter

import (
	"log/slog"
	"path/filepath"
	"strings"

	apperrors "github.com/juancuellarsol/ogilvy/internal/errors"
	"github.com/juancuellarsol/ogilvy/internal/table"
)

// Options configures the writers.
type Options struct {
	SheetName string
	CSVBOM    bool
}

// Exporter dispatches on the output extension.
type Exporter struct {
	csv    *CSVWriter
	xlsx   *XLSXWriter
	logger *slog.Logger
}

// New creates an exporter.
func New(opts Options, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "exporter")
	return &Exporter{
		csv:    NewCSVWriter(opts.CSVBOM, logger),
		xlsx:   NewXLSXWriter(opts.SheetName, logger),
		logger: logger,
	}
}

// Supported reports whether ext (with dot) can be written.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// WriteTable writes t to path and returns the path written. Unsupported
// extensions fail before anything is created.
func (e *Exporter) WriteTable(path string, t *table.Table) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(ext) {
		return "", apperrors.NewUnsupportedFormatError(ext)
	}

	var err error
	switch ext {
	case ".csv":
		err = e.csv.WriteTable(path, t)
	case ".xlsx":
		err = e.xlsx.WriteTable(path, t)
	}
	if err != nil {
		return "", apperrors.NewWriteError(path, err)
	}

	e.logger.Info("file written", slog.String("file", path), slog.Int("rows", t.Len()))
	return path, nil
}
