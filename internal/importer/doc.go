// Package importer reads analytics exports into tables.
//
// Workbooks (.xlsx, .xlsm) are read with excelize using raw cell values, so
// date cells arrive as spreadsheet serial numbers and are converted by the
// normalizer instead of being re-rendered through the workbook's display
// format. Legacy BIFF workbooks (.xls) are read with extrame/xls, which
// renders cells as text; canonical numbers are kept numeric. CSV files are decoded from UTF-8 (with or without BOM), UTF-16
// with BOM, or Windows-1252, and the delimiter is sniffed from the first
// line.
//
// Export banners are skipped with ReadOptions.SkipRows, and the header row
// is chosen with ReadOptions.Header; a negative header means the file has
// no header and columns are named by position.
package importer
