// Package store holds the showcase's selection, search and UI state.
//
// A Store is the single writer for that state: every change goes through
// Dispatch, which applies one Action under a lock and derives the filtered
// catalog in the same critical section, so readers never observe a filtered
// view that lags the catalog it was computed from.
package store

import (
	"log/slog"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/showcase/pkg/catalog"
)

const defaultFilterCacheSize = 128

// Options configures a Store. The zero value is usable.
type Options struct {
	// Themes loads the theme once at construction and saves it on every
	// SetTheme. Nil disables persistence.
	Themes ThemeStore

	// FilterCacheSize bounds the number of memoised search results.
	FilterCacheSize int

	Logger *slog.Logger
}

// filterKey identifies a filtered view: the catalog generation it was
// computed from plus the raw query.
type filterKey struct {
	catalogGen uint64
	query      string
}

// overrideKey scopes a status override to one category.
type overrideKey struct {
	category catalog.Category
	name     string
}

// override is a status set in this session. seq orders overrides so the
// name-keyed view reports the latest one.
type override struct {
	status catalog.Status
	seq    uint64
}

// Store is the selection and filter state container.
// It is safe for concurrent use.
type Store struct {
	// dispatchMu serialises writers so subscribers see changes in order.
	dispatchMu sync.Mutex

	mu          sync.RWMutex
	revision    uint64
	catalogGen  uint64
	catalog     *catalog.Catalog
	selection   Selection
	query       string
	filtered    *catalog.Catalog
	collapsed   map[catalog.Category]bool
	theme       Theme
	sidebarOpen bool
	overrides   map[overrideKey]override

	filterCache *lru.Cache[filterKey, *catalog.Catalog]
	themes      ThemeStore
	logger      *slog.Logger

	subMu       sync.Mutex
	nextSubID   int
	subscribers map[int]func(State)
}

// New creates a Store over a private copy of cat.
func New(cat *catalog.Catalog, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	size := opts.FilterCacheSize
	if size <= 0 {
		size = defaultFilterCacheSize
	}
	cache, err := lru.New[filterKey, *catalog.Catalog](size)
	if err != nil {
		// Only reachable with a non-positive size, which is excluded above.
		panic(err)
	}

	s := &Store{
		catalog:     cat.Clone(),
		collapsed:   make(map[catalog.Category]bool),
		theme:       ThemeSystem,
		sidebarOpen: true,
		overrides:   make(map[overrideKey]override),
		filterCache: cache,
		themes:      opts.Themes,
		logger:      logger,
		subscribers: make(map[int]func(State)),
	}
	s.filtered = s.catalog

	if s.themes != nil {
		stored, err := s.themes.LoadTheme()
		switch {
		case err != nil:
			logger.Warn("failed to load theme preference", "error", err)
		case stored != "":
			if t, err := ParseTheme(stored); err == nil {
				s.theme = t
			} else {
				logger.Warn("ignoring stored theme", "theme", stored, "error", err)
			}
		}
	}

	logger.Debug("store initialized",
		"categories", len(s.catalog.Sections),
		"entries", s.catalog.Len(),
		"theme", s.theme)
	return s
}

// Dispatch applies a to the state. Actions never fail: unknown categories or
// entries leave the state unchanged.
func (s *Store) Dispatch(a Action) {
	if a == nil {
		return
	}
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	changed := s.reduce(a)
	if changed {
		s.revision++
	}
	theme := s.theme
	var snap State
	notify := changed && s.hasSubscribers()
	if notify {
		snap = s.snapshotLocked()
	}
	s.mu.Unlock()

	s.logger.Debug("action dispatched", "action", a.actionName(), "changed", changed)

	if _, ok := a.(SetTheme); ok && changed && s.themes != nil {
		if err := s.themes.SaveTheme(string(theme)); err != nil {
			s.logger.Warn("failed to persist theme preference", "theme", theme, "error", err)
		}
	}

	if notify {
		s.publish(snap)
	}
}

// reduce applies a under s.mu and reports whether anything changed.
func (s *Store) reduce(a Action) bool {
	switch a := a.(type) {
	case Select:
		if a.Entry == nil || a.Category == "" {
			s.selection = Selection{}
		} else {
			e := a.Entry.Clone()
			s.selection = Selection{Entry: &e, Category: a.Category}
		}
		return true

	case UpdateStatus:
		next, ok := catalog.UpdateStatusIn(s.catalog, a.Category, a.Name, a.Status)
		if !ok {
			return false
		}
		s.catalog = next
		s.catalogGen++
		s.overrides[overrideKey{category: a.Category, name: a.Name}] = override{status: a.Status, seq: s.revision + 1}
		if sel := s.selection; sel.Entry != nil && sel.Category == a.Category && sel.Entry.Name == a.Name {
			s.selection.Entry.Status = a.Status
		}
		s.refreshFilter()
		return true

	case SetSearchQuery:
		s.query = a.Query
		s.refreshFilter()
		return true

	case ToggleCategoryCollapsed:
		if s.collapsed[a.Category] {
			delete(s.collapsed, a.Category)
		} else {
			s.collapsed[a.Category] = true
		}
		return true

	case SetTheme:
		t, err := ParseTheme(string(a.Theme))
		if err != nil {
			s.logger.Warn("ignoring invalid theme", "theme", a.Theme, "error", err)
			return false
		}
		s.theme = t
		return true

	case ToggleSidebar:
		s.sidebarOpen = !s.sidebarOpen
		return true

	case ReplaceCatalog:
		next := a.Catalog.Clone()
		for key, o := range s.overrides {
			if updated, ok := catalog.UpdateStatusIn(next, key.category, key.name, o.status); ok {
				next = updated
			}
		}
		s.catalog = next
		s.catalogGen++
		s.refreshSelection()
		s.refreshFilter()
		return true

	default:
		s.logger.Warn("unhandled action", "type", a.actionName())
		return false
	}
}

// refreshFilter recomputes the filtered view from the current catalog and
// query. Filtered catalogs are never mutated after creation, so cached
// values may be shared.
func (s *Store) refreshFilter() {
	if strings.TrimSpace(s.query) == "" {
		s.filtered = s.catalog
		return
	}
	key := filterKey{catalogGen: s.catalogGen, query: s.query}
	if cached, ok := s.filterCache.Get(key); ok {
		s.filtered = cached
		return
	}
	s.filtered = catalog.Filter(s.catalog, s.query)
	s.filterCache.Add(key, s.filtered)
}

// refreshSelection re-reads the selected entry from the current catalog and
// clears the selection if it no longer exists.
func (s *Store) refreshSelection() {
	if s.selection.Entry == nil {
		return
	}
	sec, ok := s.catalog.Section(s.selection.Category)
	if ok {
		for _, e := range sec.Entries {
			if e.Name == s.selection.Entry.Name {
				fresh := e.Clone()
				s.selection.Entry = &fresh
				return
			}
		}
	}
	s.selection = Selection{}
}

// --- Convenience wrappers ---

// SelectEntry dispatches Select.
func (s *Store) SelectEntry(entry *catalog.Entry, category catalog.Category) {
	s.Dispatch(Select{Entry: entry, Category: category})
}

// UpdateStatus dispatches UpdateStatus.
func (s *Store) UpdateStatus(category catalog.Category, name string, status catalog.Status) {
	s.Dispatch(UpdateStatus{Category: category, Name: name, Status: status})
}

// SetSearchQuery dispatches SetSearchQuery.
func (s *Store) SetSearchQuery(query string) {
	s.Dispatch(SetSearchQuery{Query: query})
}

// ToggleCategoryCollapsed dispatches ToggleCategoryCollapsed.
func (s *Store) ToggleCategoryCollapsed(category catalog.Category) {
	s.Dispatch(ToggleCategoryCollapsed{Category: category})
}

// SetTheme dispatches SetTheme.
func (s *Store) SetTheme(theme Theme) {
	s.Dispatch(SetTheme{Theme: theme})
}

// ToggleSidebar dispatches ToggleSidebar.
func (s *Store) ToggleSidebar() {
	s.Dispatch(ToggleSidebar{})
}

// ReplaceCatalog dispatches ReplaceCatalog.
func (s *Store) ReplaceCatalog(cat *catalog.Catalog) {
	s.Dispatch(ReplaceCatalog{Catalog: cat})
}

// --- Read accessors ---
// Every accessor returns a copy; callers may modify results freely.

// Revision increases by one for every dispatch that changed the state.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Catalog returns the full, unfiltered catalog.
func (s *Store) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Clone()
}

// Filter returns the search query and the filtered catalog.
func (s *Store) Filter() FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked()
}

// Selection returns the current selection.
func (s *Store) Selection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection.clone()
}

// Collapsed returns the collapsed categories in lexical order.
func (s *Store) Collapsed() []catalog.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedCategories(s.collapsed)
}

// IsCollapsed reports whether category is collapsed.
func (s *Store) IsCollapsed(category catalog.Category) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collapsed[category]
}

// Theme returns the active theme.
func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SidebarOpen reports whether the navigation sidebar is open.
func (s *Store) SidebarOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarOpen
}

// StatusOverrides returns the statuses recorded by UpdateStatus, by entry
// name. When the same name was updated in several categories the latest
// update is reported.
func (s *Store) StatusOverrides() map[string]catalog.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overridesLocked()
}

// Progress counts entries by status over the unfiltered catalog, so an
// active search never changes the result.
func (s *Store) Progress() catalog.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.ComputeProgress(s.catalog)
}

// Snapshot returns a consistent copy of the whole state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	return State{
		Revision:        s.revision,
		Catalog:         s.catalog.Clone(),
		Selection:       s.selection.clone(),
		Filter:          s.filterLocked(),
		Collapsed:       sortedCategories(s.collapsed),
		Theme:           s.theme,
		SidebarOpen:     s.sidebarOpen,
		StatusOverrides: s.overridesLocked(),
	}
}

func (s *Store) filterLocked() FilterState {
	return FilterState{
		SearchQuery:     s.query,
		FilteredCatalog: s.filtered.Clone(),
		IsSearchActive:  strings.TrimSpace(s.query) != "",
	}
}

func (s *Store) overridesLocked() map[string]catalog.Status {
	out := make(map[string]catalog.Status, len(s.overrides))
	latest := make(map[string]uint64, len(s.overrides))
	for k, o := range s.overrides {
		if seq, seen := latest[k.name]; seen && seq > o.seq {
			continue
		}
		out[k.name] = o.status
		latest[k.name] = o.seq
	}
	return out
}

// --- Subscriptions ---

// Subscribe registers fn to receive a snapshot after every state change.
// Callbacks run synchronously on the dispatching goroutine, in dispatch
// order, and must not call Dispatch. The returned func unregisters fn.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *Store) hasSubscribers() bool {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subscribers) > 0
}

func (s *Store) publish(snap State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
