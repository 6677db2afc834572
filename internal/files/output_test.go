package files

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/juancuellarsol/ogilvy/internal/errors"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		suffix string
		format string
		want   string
	}{
		{name: "default suffix", input: filepath.Join("data", "export.xlsx"), format: "xlsx", want: filepath.Join("data", "export_limpio.xlsx")},
		{name: "csv from workbook", input: filepath.Join("data", "export.xlsx"), suffix: "_clean", format: "csv", want: filepath.Join("data", "export_clean.csv")},
		{name: "dotted format", input: "export.v2.csv", suffix: "_x", format: ".XLSX", want: "export.v2_x.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputPath(tt.input, tt.suffix, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := OutputPath("export.xlsx", "", "json")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeUnsupportedFormat, apperrors.TypeOf(err))
}
