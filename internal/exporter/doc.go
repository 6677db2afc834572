// Package exporter writes normalized tables back to disk.
//
// This package contains three components:
//
// CSVWriter: CSV writing with an optional UTF-8 BOM so Excel opens accented
// text correctly, plus a StreamWriter for row-at-a-time output.
//
// XLSXWriter: workbook output through the excelize stream writer, keeping
// numeric cells numeric and styling the header row.
//
// Exporter: picks the writer from the output extension and rejects any
// other extension before touching the filesystem.
//
// Example usage:
//
//	exp := exporter.New(exporter.Options{SheetName: "Sheet1", CSVBOM: true}, logger)
//	written, err := exp.WriteTable("out/export_limpio.xlsx", tbl)
package exporter
