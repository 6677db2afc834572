package table

import (
	"fmt"
	"strings"
)

// CleanHeaders trims header names and collapses inner whitespace. Empty names
// become "Unnamed: <i>" and repeats get ".1", ".2" suffixes, so the result is
// always unique.
func CleanHeaders(names []string) []string {
	out := make([]string, len(names))
	used := make(map[string]struct{}, len(names))
	for i, n := range names {
		n = strings.Join(strings.Fields(n), " ")
		if n == "" {
			n = fmt.Sprintf("Unnamed: %d", i)
		}
		name := n
		for k := 1; ; k++ {
			if _, dup := used[name]; !dup {
				break
			}
			name = fmt.Sprintf("%s.%d", n, k)
		}
		used[name] = struct{}{}
		out[i] = name
	}
	return out
}

// NormalizeHeaders applies CleanHeaders to the table in place.
func (t *Table) NormalizeHeaders() {
	cleaned := CleanHeaders(t.Columns)
	for i := range cleaned {
		if cleaned[i] != t.Columns[i] {
			t.RenameColumns(cleaned)
			return
		}
	}
}
