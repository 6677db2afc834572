package files

import (
	"fmt"
	"path/filepath"
	"strings"

	apperrors "github.com/juancuellarsol/ogilvy/internal/errors"
)

// DefaultSuffix is appended to the input stem when none is configured.
const DefaultSuffix = "_limpio"

// Output formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// OutputPath returns "<dir>/<stem><suffix>.<format>" for input.
func OutputPath(input, suffix, format string) (string, error) {
	format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	switch format {
	case FormatXLSX, FormatCSV:
	default:
		return "", apperrors.NewUnsupportedFormatError(format).
			WithContext("allowed", []string{FormatXLSX, FormatCSV})
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}
	dir := filepath.Dir(input)
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, fmt.Sprintf("%s%s.%s", stem, suffix, format)), nil
}
