// Package tui is the interactive catalog browser: a collapsible category
// sidebar with live search, a detail pane for the selected entry and an
// overall progress bar. All state lives in a store.Store; the Model only
// keeps cursor and input widgets.
package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gnana997/showcase/pkg/catalog"
	"github.com/gnana997/showcase/pkg/store"
)

// StateChangedMsg is sent when the store changes outside the TUI, for
// example after the catalog file is reloaded.
type StateChangedMsg struct {
	State store.State
}

// row is one line of the sidebar: a category header or an entry under it.
type row struct {
	category catalog.Category
	entry    *catalog.Entry // nil for headers
	matches  int            // headers only
}

func (r row) isHeader() bool {
	return r.entry == nil
}

// Model is the Bubbletea model for the catalog browser.
type Model struct {
	store *store.Store

	rows   []row
	cursor int

	search    textinput.Model
	searching bool
	bar       progress.Model

	state    store.State
	width    int
	height   int
	quitting bool
	notice   string
}

// NewModel creates a browser over st.
func NewModel(st *store.Store) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search widgets"
	ti.CharLimit = 64
	ti.SetValue(st.Filter().SearchQuery)

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 24

	m := Model{store: st, search: ti, bar: bar}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// Subscribe forwards store changes to p as StateChangedMsg. It returns the
// unsubscribe func.
func Subscribe(p *tea.Program, st *store.Store) func() {
	return st.Subscribe(func(s store.State) {
		go p.Send(StateChangedMsg{State: s})
	})
}

// refresh re-reads the store and rebuilds the sidebar rows, keeping the
// cursor on the same row where possible.
func (m *Model) refresh() {
	var current row
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		current = m.rows[m.cursor]
	}

	m.state = m.store.Snapshot()
	collapsed := make(map[catalog.Category]bool, len(m.state.Collapsed))
	for _, c := range m.state.Collapsed {
		collapsed[c] = true
	}

	m.rows = nil
	for _, sec := range m.state.Filter.FilteredCatalog.Sections {
		m.rows = append(m.rows, row{category: sec.Category, matches: len(sec.Entries)})
		if collapsed[sec.Category] {
			continue
		}
		for i := range sec.Entries {
			m.rows = append(m.rows, row{category: sec.Category, entry: &sec.Entries[i]})
		}
	}

	m.cursor = m.indexOf(current)
}

// indexOf finds r in the rows, falling back to its category header, then to
// a clamped cursor.
func (m *Model) indexOf(r row) int {
	header := -1
	for i, candidate := range m.rows {
		if candidate.category != r.category {
			continue
		}
		if candidate.isHeader() {
			header = i
			if r.isHeader() {
				return i
			}
			continue
		}
		if !r.isHeader() && candidate.entry.Name == r.entry.Name {
			return i
		}
	}
	if header >= 0 {
		return header
	}
	if m.cursor >= len(m.rows) {
		return max(len(m.rows)-1, 0)
	}
	return max(m.cursor, 0)
}

func (m Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}
