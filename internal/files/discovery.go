package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "github.com/juancuellarsol/ogilvy/internal/errors"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. Relative paths and
// patterns are resolved against basePath; an empty basePath means the
// working directory.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) resolve(p string) string {
	if d.basePath == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(d.basePath, p)
}

// Expand returns the single file, or every file matching glob sorted by
// name. Exactly one of file and glob must be set. A glob that matches
// nothing is an error.
func (d *Discovery) Expand(file, glob string) ([]FileInfo, error) {
	switch {
	case file != "" && glob != "":
		return nil, apperrors.NewAppValidationError("use either --file or --glob, not both")
	case file != "":
		info, err := os.Stat(d.resolve(file))
		if err != nil {
			return nil, apperrors.NewReadError(file, err)
		}
		if info.IsDir() {
			return nil, apperrors.NewReadError(file, fmt.Errorf("%s is a directory, not a file", file))
		}
		return []FileInfo{toFileInfo(d.resolve(file), info)}, nil
	case glob != "":
		files, err := d.FindFilesByPattern(glob)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, apperrors.NewAppValidationError(fmt.Sprintf("no files match %q", glob)).
				WithContext("glob", glob)
		}
		return files, nil
	default:
		return nil, apperrors.NewAppValidationError("pass --file or --glob")
	}
}

// FindFilesByPattern finds files matching a glob pattern
func (d *Discovery) FindFilesByPattern(pattern string) ([]FileInfo, error) {
	matches, err := filepath.Glob(d.resolve(pattern))
	if err != nil {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("invalid pattern %s: %v", pattern, err))
	}

	var files []FileInfo
	for _, match := range matches {
		if IsLockFile(match) {
			continue
		}
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, toFileInfo(match, info))
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// IsLockFile reports Office owner files such as "~$export.xlsx".
func IsLockFile(path string) bool {
	return strings.HasPrefix(filepath.Base(path), "~$")
}

func toFileInfo(path string, info os.FileInfo) FileInfo {
	return FileInfo{
		Path:    path,
		Name:    filepath.Base(path),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}
