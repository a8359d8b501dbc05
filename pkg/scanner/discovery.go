package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// globFilter decides which slash-separated paths, relative to the scan
// root, are read.
type globFilter struct {
	include []string
	exclude []string
}

func newGlobFilter(cfg ScanConfig) (globFilter, error) {
	for kind, patterns := range map[string][]string{"include": cfg.Include, "exclude": cfg.Exclude} {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				return globFilter{}, fmt.Errorf("invalid %s pattern: %s", kind, p)
			}
		}
	}
	return globFilter{include: cfg.Include, exclude: cfg.Exclude}, nil
}

func (g globFilter) excluded(rel string) bool {
	return matchAny(g.exclude, rel)
}

// included treats an empty include list as "everything".
func (g globFilter) included(rel string) bool {
	return len(g.include) == 0 || matchAny(g.include, rel)
}

func matchAny(patterns []string, rel string) bool {
	return slices.ContainsFunc(patterns, func(p string) bool {
		ok, _ := doublestar.Match(p, rel)
		return ok
	})
}

// DiscoverFiles lists the files under rootDir selected by cfg, as sorted
// absolute paths. Unreadable subdirectories are skipped.
func DiscoverFiles(rootDir string, cfg ScanConfig) ([]string, error) {
	filter, err := newGlobFilter(cfg)
	if err != nil {
		return nil, err
	}
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	var files []string
	walk := func(rel string, d fs.DirEntry, err error) error {
		switch {
		case err != nil && rel == ".":
			return err
		case err != nil:
			return nil
		case rel == ".":
			return nil
		case filter.excluded(rel):
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		case d.IsDir() || !filter.included(rel):
			return nil
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(rel)))
		return nil
	}
	if err := fs.WalkDir(os.DirFS(root), ".", walk); err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}
