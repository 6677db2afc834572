package normalize

import (
	"fmt"
	"strings"

	"github.com/juancuellarsol/ogilvy/internal/profile"
	"github.com/juancuellarsol/ogilvy/internal/table"
)

// ProjectOptions selects the final column set.
type ProjectOptions struct {
	// KeepColumns, when non-nil, is the explicit allow-list.
	KeepColumns []string
	// UseDefault substitutes Defaults when KeepColumns is nil.
	UseDefault bool
	Defaults   profile.ColumnSet
	// Pinned columns always lead the output.
	Pinned []string
}

// Project returns the projected table and a warning for every requested
// column that does not exist. It never adds a column that t lacks.
func Project(t *table.Table, opts ProjectOptions) (*table.Table, []string) {
	pinned := make([]string, 0, len(opts.Pinned))
	isPinned := make(map[string]struct{}, len(opts.Pinned))
	for _, p := range opts.Pinned {
		if t.HasColumn(p) {
			pinned = append(pinned, p)
		}
		isPinned[p] = struct{}{}
	}

	keep := opts.KeepColumns
	source := "keep-columns"
	if keep == nil && opts.UseDefault {
		keep = opts.Defaults.Columns
		source = fmt.Sprintf("%s v%d", opts.Defaults.Name, opts.Defaults.Version)
	}

	if keep == nil {
		order := append([]string(nil), pinned...)
		for _, c := range t.Columns {
			if _, ok := isPinned[c]; !ok {
				order = append(order, c)
			}
		}
		return t.Select(order), nil
	}

	var warnings []string
	order := append([]string(nil), pinned...)
	seen := make(map[string]struct{}, len(keep))
	for _, want := range keep {
		want = strings.TrimSpace(want)
		if want == "" {
			continue
		}
		name, ok := matchColumn(t, want)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("column %q from %s not found; skipped", want, source))
			continue
		}
		if _, ok := isPinned[name]; ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		order = append(order, name)
	}
	return t.Select(order), warnings
}

func matchColumn(t *table.Table, want string) (string, bool) {
	if t.HasColumn(want) {
		return want, true
	}
	return t.FindFold(want)
}
