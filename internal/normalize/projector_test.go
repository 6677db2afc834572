package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juancuellarsol/ogilvy/internal/profile"
	"github.com/juancuellarsol/ogilvy/internal/table"
)

func projected() *table.Table {
	return table.FromRecords(
		[]string{"date", "hora", "Platform", "Views", "Creator"},
		[][]string{{"9/5/2025", "6:00:00 PM", "YouTube", "10", "ana"}},
	)
}

func TestProject(t *testing.T) {
	defaults := profile.ColumnSet{Name: "test", Version: 2, Columns: []string{"Creator", "Video_URL", "platform"}}
	pinned := []string{"date", "hora"}

	tests := []struct {
		name     string
		opts     ProjectOptions
		columns  []string
		warnings int
	}{
		{
			name:    "no list keeps everything with pinned first",
			opts:    ProjectOptions{Pinned: pinned},
			columns: []string{"date", "hora", "Platform", "Views", "Creator"},
		},
		{
			name:     "explicit list with unknown and case fallback",
			opts:     ProjectOptions{KeepColumns: []string{"views", "Nope", "Creator", "Creator", "hora"}, Pinned: pinned},
			columns:  []string{"date", "hora", "Views", "Creator"},
			warnings: 1,
		},
		{
			name:     "default list",
			opts:     ProjectOptions{UseDefault: true, Defaults: defaults, Pinned: pinned},
			columns:  []string{"date", "hora", "Creator", "Platform"},
			warnings: 1,
		},
		{
			name:    "explicit list wins over defaults",
			opts:    ProjectOptions{KeepColumns: []string{"Views"}, UseDefault: true, Defaults: defaults, Pinned: pinned},
			columns: []string{"date", "hora", "Views"},
		},
		{
			name:    "empty explicit list keeps only pinned",
			opts:    ProjectOptions{KeepColumns: []string{}, Pinned: pinned},
			columns: []string{"date", "hora"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := projected()
			out, warnings := Project(in, tt.opts)
			require.NotNil(t, out)
			assert.Equal(t, tt.columns, out.Columns)
			assert.Len(t, warnings, tt.warnings)
			assert.Equal(t, in.Len(), out.Len())
		})
	}
}

func TestProject_WarningNamesColumn(t *testing.T) {
	_, warnings := Project(projected(), ProjectOptions{KeepColumns: []string{"Nope"}})
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `"Nope"`)
}
