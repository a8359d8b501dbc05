// Package parser wraps tree-sitter for the JavaScript and TypeScript sources
// of the showcase widgets.
package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/gnana997/showcase/pkg/util"
)

type poolKey struct {
	lang  Language
	isTSX bool
}

func (k poolKey) String() string {
	if k.isTSX {
		return "tsx"
	}
	return k.lang.String()
}

// Manager owns one lazily created parser pool per grammar.
// It is safe for concurrent use. Callers own the returned trees and must
// Close them; the Manager itself must be closed when no longer needed.
type Manager struct {
	mu       sync.RWMutex
	pools    map[poolKey]*parserPool
	poolSize int
	logger   *slog.Logger
}

// NewManager creates a Manager. poolSize <= 0 selects a CPU-based default.
func NewManager(poolSize int, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		pools:    make(map[poolKey]*parserPool),
		poolSize: util.PoolSize(poolSize),
		logger:   logger,
	}
}

// ParseFile parses source with the grammar selected by filePath's extension.
//
// Trees containing syntax errors are still returned; partial trees are
// useful for extraction.
func (m *Manager) ParseFile(source []byte, filePath string) (*ts.Tree, error) {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return m.Parse(source, lang, IsTSXFile(filePath))
}

// Parse parses source with the given grammar. isTSX only matters for
// TypeScript.
func (m *Manager) Parse(source []byte, lang Language, isTSX bool) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}
	if lang != LanguageTypeScript {
		isTSX = false
	}

	pool, err := m.pool(poolKey{lang: lang, isTSX: isTSX})
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", lang, err)
	}
	p, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := p.Parse(source, nil)
	pool.release(p)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}
	if tree.RootNode().HasError() {
		m.logger.Debug("parse tree contains errors", "language", lang.String())
	}
	return tree, nil
}

// Close releases every pooled parser.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.pools {
		p.close()
	}
	m.pools = make(map[poolKey]*parserPool)
	return nil
}

func (m *Manager) pool(key poolKey) (*parserPool, error) {
	m.mu.RLock()
	p, ok := m.pools[key]
	m.mu.RUnlock()
	if ok {
		return p, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok = m.pools[key]; ok {
		return p, nil
	}
	langPtr, err := languagePointer(key)
	if err != nil {
		return nil, err
	}
	p = newParserPool(key.String(), ts.NewLanguage(langPtr), m.poolSize, m.logger)
	m.pools[key] = p
	return p, nil
}

func languagePointer(key poolKey) (unsafe.Pointer, error) {
	switch key.lang {
	case LanguageTypeScript:
		if key.isTSX {
			return ts_typescript.LanguageTSX(), nil
		}
		return ts_typescript.LanguageTypescript(), nil
	case LanguageJavaScript:
		return ts_javascript.Language(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", key.lang)
	}
}
