package fs

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"bslcheck/internal/port"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type Walker struct {
	includes      []string
	excludes      []string
	respectIgnore bool
}

func NewWalker(includes, excludes []string, respectGitignore bool) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*.bsl"}
	}
	return &Walker{
		includes:      includes,
		excludes:      excludes,
		respectIgnore: respectGitignore,
	}
}

// Walk returns the files under root matching the include patterns, sorted by
// path. Paths are root joined with the relative path, so they stay relative
// when root is.
func (w *Walker) Walk(root string) ([]port.FileInfo, error) {
	var files []port.FileInfo

	var gi *ignore.GitIgnore
	if w.respectIgnore {
		gi = loadGitignore(root)
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		slashPath := filepath.ToSlash(relPath)

		if info.IsDir() {
			if relPath == "." {
				return nil
			}
			if w.shouldExclude(slashPath+"/") || (gi != nil && gi.MatchesPath(slashPath+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if gi != nil && gi.MatchesPath(slashPath) {
			return nil
		}

		if w.shouldInclude(slashPath) && !w.shouldExclude(slashPath) {
			files = append(files, port.FileInfo{
				Path: filepath.Clean(path),
				Size: info.Size(),
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

func (w *Walker) shouldInclude(path string) bool {
	for _, pattern := range w.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) shouldExclude(path string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// ReadFile reads a UTF-8 file, dropping a leading byte order mark. 1C
// Designer exports modules with one.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}
