package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// DirSource serves the frame files of a directory sorted by the number in
// their names, so frame2 plays before frame10. A plain file path yields a
// single-frame source.
type DirSource struct {
	paths []string
}

func NewDirSource(path string, exts ...string) (*DirSource, error) {
	if len(exts) == 0 {
		exts = FrameExtensions
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && hasExt(entry.Name(), exts) {
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		SortNumeric(paths)
	} else {
		paths = []string{path}
	}

	return &DirSource{paths: paths}, nil
}

func (s *DirSource) FrameCount() int {
	return len(s.paths)
}

func (s *DirSource) FramePath(index int) string {
	if index < 0 || index >= len(s.paths) {
		return ""
	}
	return s.paths[index]
}

func (s *DirSource) ReadFrame(index int) ([]byte, error) {
	if index < 0 || index >= len(s.paths) {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", index, len(s.paths))
	}
	return os.ReadFile(s.paths[index])
}

func (s *DirSource) Close() error {
	return nil
}

// NumericSuffix returns the last run of digits in the file's base name, or
// -1 when there is none.
func NumericSuffix(path string) int {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	end := strings.LastIndexFunc(base, unicode.IsDigit)
	if end < 0 {
		return -1
	}
	start := end
	for start > 0 && unicode.IsDigit(rune(base[start-1])) {
		start--
	}
	n, err := strconv.Atoi(base[start : end+1])
	if err != nil {
		return -1
	}
	return n
}

// SortNumeric orders paths by NumericSuffix, falling back to the name.
func SortNumeric(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		ni, nj := NumericSuffix(paths[i]), NumericSuffix(paths[j])
		if ni != nj {
			return ni < nj
		}
		return paths[i] < paths[j]
	})
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
