package table

import "strings"

// Row maps column name to cell. An absent key reads as Missing.
type Row map[string]Value

// Get returns the named cell or Missing.
func (r Row) Get(name string) Value {
	return r[name]
}

// Table is an ordered set of columns over a list of rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column order.
func New(columns []string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// FromRecords builds a table from a header and a string matrix, as produced
// by CSV readers. Short records are padded with Missing.
func FromRecords(header []string, records [][]string) *Table {
	t := New(header)
	for _, rec := range records {
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = String(rec[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Append adds a row.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether name is a declared column.
func (t *Table) HasColumn(name string) bool {
	return t.indexOf(name) >= 0
}

func (t *Table) indexOf(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the values of a column in row order.
func (t *Table) Column(name string) []Value {
	out := make([]Value, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Get(name)
	}
	return out
}

// SetColumn writes values into a column, appending it to the column order
// when it does not exist yet. values must have one entry per row.
func (t *Table) SetColumn(name string, values []Value) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
	for i, r := range t.Rows {
		if i < len(values) {
			r[name] = values[i]
		} else {
			delete(r, name)
		}
	}
}

// RenameColumns replaces the column names positionally. Cells are moved
// along with their column.
func (t *Table) RenameColumns(names []string) {
	if len(names) != len(t.Columns) {
		return
	}
	old := t.Columns
	t.Columns = append([]string(nil), names...)
	for i, r := range t.Rows {
		nr := make(Row, len(r))
		for j, name := range old {
			if v, ok := r[name]; ok {
				nr[names[j]] = v
			}
		}
		t.Rows[i] = nr
	}
}

// DropColumns removes columns and their cells. Unknown names are ignored.
func (t *Table) DropColumns(names ...string) {
	if len(names) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	kept := t.Columns[:0:0]
	for _, c := range t.Columns {
		if _, ok := drop[c]; !ok {
			kept = append(kept, c)
		}
	}
	t.Columns = kept
	for _, r := range t.Rows {
		for n := range drop {
			delete(r, n)
		}
	}
}

// InsertFront places columns at the front in the given order. Any existing
// column with the same name is replaced.
func (t *Table) InsertFront(names []string, columns [][]Value) {
	t.DropColumns(names...)
	t.Columns = append(append([]string(nil), names...), t.Columns...)
	for i, name := range names {
		for j, r := range t.Rows {
			if i < len(columns) && j < len(columns[i]) {
				r[name] = columns[i][j]
			}
		}
	}
}

// Select returns a new table holding only the given columns in that order.
// Names that are not declared columns are skipped.
func (t *Table) Select(columns []string) *Table {
	var kept []string
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup || !t.HasColumn(c) {
			continue
		}
		seen[c] = struct{}{}
		kept = append(kept, c)
	}
	out := New(kept)
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		nr := make(Row, len(kept))
		for _, c := range kept {
			if v, ok := r[c]; ok {
				nr[c] = v
			}
		}
		out.Rows[i] = nr
	}
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := New(t.Columns)
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		out.Rows[i] = nr
	}
	return out
}

// Head returns a table with at most n leading rows sharing the same cells.
func (t *Table) Head(n int) *Table {
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	out := New(t.Columns)
	out.Rows = t.Rows[:n]
	return out
}

// Records returns the header and the rows rendered as text.
func (t *Table) Records() ([]string, [][]string) {
	header := append([]string(nil), t.Columns...)
	records := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rec := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			rec[j] = r.Get(c).Text()
		}
		records[i] = rec
	}
	return header, records
}

// FindFold returns the first declared column equal to name ignoring case.
func (t *Table) FindFold(name string) (string, bool) {
	for _, c := range t.Columns {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}
