package fs

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Walker expands command-line arguments into candidate document paths.
// Glob patterns are matched with doublestar, directories are walked and
// filtered by the include patterns, and plain paths pass through untouched
// so validation can report on them.
type Walker struct {
	includes []string
	excludes []string
}

func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*.txt"}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
	}
}

// Expand returns the candidate paths for args, in argument order.
func (w *Walker) Expand(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if hasMeta(arg) {
			matches, err := doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, err
			}
			if len(matches) == 0 {
				// Let validation report the unmatched pattern.
				paths = append(paths, arg)
				continue
			}
			sort.Strings(matches)
			for _, m := range matches {
				if !w.shouldExclude(filepath.ToSlash(m)) {
					paths = append(paths, m)
				}
			}
			continue
		}

		if info, err := os.Stat(arg); err == nil && info.IsDir() {
			files, err := w.Walk(arg)
			if err != nil {
				return nil, err
			}
			paths = append(paths, files...)
			continue
		}

		paths = append(paths, arg)
	}
	return paths, nil
}

// Walk returns the files under root that match the include patterns and
// none of the exclude patterns. Returned paths are joined onto root.
func (w *Walker) Walk(root string) ([]string, error) {
	var files []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if relPath != "." && w.shouldExclude(relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if w.shouldInclude(relPath) && !w.shouldExclude(relPath) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
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

func hasMeta(path string) bool {
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
