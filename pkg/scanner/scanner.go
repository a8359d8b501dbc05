// Package scanner enriches a catalog from widget sources: it parses the JSX
// and TSX files of a component library and turns their cva() variant
// configurations into entry variant and size presets.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gnana997/showcase/pkg/catalog"
	"github.com/gnana997/showcase/pkg/parser"
	"github.com/gnana997/showcase/pkg/util"
)

const (
	variantKey = "variant"
	sizeKey    = "size"
)

// Scanner reads widget sources with a shared parser pool.
type Scanner struct {
	parsers *parser.Manager
	logger  *slog.Logger
}

// New creates a Scanner. Close it to release its parsers.
func New(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		parsers: parser.NewManager(0, logger),
		logger:  logger,
	}
}

// Close releases the parser pool.
func (s *Scanner) Close() error {
	return s.parsers.Close()
}

type fileResult struct {
	path    string
	sets    []VariantSet
	exports []Export
	err     error
}

// Scan discovers widget files under dir, matches each to the catalog
// entries named like the file or like one of its exported components and
// returns an enriched copy of cat. cat itself is not modified. Per-file failures are recorded
// in the report rather than aborting the scan.
func (s *Scanner) Scan(ctx context.Context, dir string, cat *catalog.Catalog, cfg ScanConfig) (*catalog.Catalog, *Report, error) {
	files, err := DiscoverFiles(dir, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to discover widget files: %w", err)
	}
	s.logger.Info("scanning widget sources", "dir", dir, "files", len(files))

	results, err := s.parseAll(ctx, files, cfg.Workers)
	if err != nil {
		return nil, nil, err
	}

	out := cat.Clone()
	index := entryIndex(out)
	report := &Report{FilesScanned: len(files), Matches: []Match{}, Unmatched: []string{}}

	for _, r := range results {
		rel := relativeTo(dir, r.path)
		if r.err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", rel, r.err))
			continue
		}
		cands := candidates(r, index)
		if len(cands) == 0 {
			report.Unmatched = append(report.Unmatched, rel)
			continue
		}
		for _, c := range cands {
			entry := &out.Sections[c.ref.section].Entries[c.ref.entry]
			if m, ok := enrich(entry, r.sets, c); ok {
				m.File = rel
				m.Category = string(out.Sections[c.ref.section].Category)
				report.Matches = append(report.Matches, m)
			}
		}
	}

	s.logger.Info("scan complete",
		"files", report.FilesScanned,
		"matched", len(report.Matches),
		"unmatched", len(report.Unmatched),
		"errors", len(report.Errors))
	return out, report, nil
}

// ExtractFile returns the cva() configurations in one source file.
func (s *Scanner) ExtractFile(path string, source []byte) ([]VariantSet, error) {
	sets, _, err := s.analyze(path, source)
	return sets, err
}

// ExtractExports returns the components one source file exports.
func (s *Scanner) ExtractExports(path string, source []byte) ([]Export, error) {
	_, exports, err := s.analyze(path, source)
	return exports, err
}

// analyze parses source once and runs every extraction over the tree.
func (s *Scanner) analyze(path string, source []byte) ([]VariantSet, []Export, error) {
	tree, err := s.parsers.ParseFile(source, path)
	if err != nil {
		return nil, nil, err
	}
	defer tree.Close()
	root := tree.RootNode()
	return extractVariantSets(root, source), extractExports(root, source), nil
}

// parseAll extracts every file concurrently, keeping results in input order.
func (s *Scanner) parseAll(ctx context.Context, files []string, workers int) ([]fileResult, error) {
	results := make([]fileResult, len(files))
	if len(files) == 0 {
		return results, nil
	}
	workers = util.PoolSize(workers)
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.parseOne(files[i])
			}
		}()
	}

	var cancelled error
feed:
	for i := range files {
		if cancelled = ctx.Err(); cancelled != nil {
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, fmt.Errorf("scan cancelled: %w", cancelled)
	}
	return results, nil
}

func (s *Scanner) parseOne(path string) fileResult {
	source, err := util.ReadFile(path)
	if err != nil {
		return fileResult{path: path, err: fmt.Errorf("failed to read file: %w", err)}
	}
	sets, exports, err := s.analyze(path, source)
	if err != nil {
		s.logger.Debug("extraction failed", "file", path, "error", err)
		return fileResult{path: path, err: err}
	}
	return fileResult{path: path, sets: sets, exports: exports}
}

type entryRef struct {
	section, entry int
}

// entryIndex maps normalized entry names to their positions.
func entryIndex(c *catalog.Catalog) map[string][]entryRef {
	index := make(map[string][]entryRef)
	for si, sec := range c.Sections {
		for ei, e := range sec.Entries {
			key := normalizeName(e.Name)
			index[key] = append(index[key], entryRef{section: si, entry: ei})
		}
	}
	return index
}

// candidate is one entry a file may describe. byFile is set when the file
// name itself matched; doc is the JSDoc of the matching export.
type candidate struct {
	ref    entryRef
	byFile bool
	doc    string
}

// candidates resolves the file name first, then each exported component.
func candidates(r fileResult, index map[string][]entryRef) []candidate {
	var out []candidate
	seen := make(map[entryRef]bool)

	fileKey := normalizeName(baseName(r.path))
	fileDoc := ""
	for _, e := range r.exports {
		if normalizeName(e.Name) == fileKey {
			fileDoc = e.Doc
			break
		}
		if e.Default && fileDoc == "" {
			fileDoc = e.Doc
		}
	}
	for _, ref := range index[fileKey] {
		seen[ref] = true
		out = append(out, candidate{ref: ref, byFile: true, doc: fileDoc})
	}

	for _, e := range r.exports {
		for _, ref := range index[normalizeName(e.Name)] {
			if seen[ref] {
				continue
			}
			seen[ref] = true
			out = append(out, candidate{ref: ref, doc: e.Doc})
		}
	}
	return out
}

// enrich applies the file's variant set and doc to entry. It reports false
// when the file had nothing to contribute. Entries matched only by export
// name take the set named after them, never a fallback set, so a file that
// exports several components does not spread one set across all of them.
func enrich(entry *catalog.Entry, sets []VariantSet, c candidate) (Match, bool) {
	var set *VariantSet
	if c.byFile {
		set = pickVariantSet(sets, entry.Name)
	} else {
		set = namedVariantSet(sets, entry.Name)
	}
	described := false
	if entry.Description == "" && c.doc != "" {
		entry.Description = c.doc
		described = true
	}
	if set == nil && !described {
		return Match{}, false
	}
	if set != nil {
		applyVariantSet(entry, set)
	}
	return Match{
		Entry:     entry.Name,
		Variants:  len(entry.Variants),
		Sizes:     len(entry.Sizes),
		Described: described,
	}, true
}

// normalizeName folds PascalCase, kebab-case and snake_case names to one key:
// "TextField", "text-field" and "text_field" all become "textfield".
func normalizeName(name string) string {
	name = strings.ToLower(name)
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// pickVariantSet prefers the set assigned to "<entry>Variants", then the
// first set that declares a variant or size key.
func pickVariantSet(sets []VariantSet, entryName string) *VariantSet {
	if set := namedVariantSet(sets, entryName); set != nil {
		return set
	}
	for i := range sets {
		if len(sets[i].Variants[variantKey]) > 0 || len(sets[i].Variants[sizeKey]) > 0 {
			return &sets[i]
		}
	}
	return nil
}

func namedVariantSet(sets []VariantSet, entryName string) *VariantSet {
	want := normalizeName(entryName) + "variants"
	for i := range sets {
		if normalizeName(sets[i].VariableName) == want {
			return &sets[i]
		}
	}
	return nil
}

// applyVariantSet replaces the entry's variants and sizes with presets
// built from set. Keys the set does not declare leave the entry untouched.
func applyVariantSet(entry *catalog.Entry, set *VariantSet) {
	if values := set.Variants[variantKey]; len(values) > 0 {
		entry.Variants = presets(variantKey, values, set.Defaults[variantKey])
	}
	if values := set.Variants[sizeKey]; len(values) > 0 {
		entry.Sizes = presets(sizeKey, values, set.Defaults[sizeKey])
	}
}

// presets builds one preset per value, with the default value first.
func presets(key string, values []string, def string) []catalog.Preset {
	out := make([]catalog.Preset, 0, len(values))
	for _, v := range values {
		out = append(out, catalog.Preset{Name: v, Props: map[string]any{key: v}})
	}
	if def != "" {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Name == def && out[j].Name != def
		})
	}
	return out
}

func relativeTo(root, path string) string {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(absRoot, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
