package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gnana997/showcase/pkg/catalog"
	"github.com/gnana997/showcase/pkg/store"
)

var themeCycle = []store.Theme{store.ThemeLight, store.ThemeDark, store.ThemeSystem}

// Update handles Bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case StateChangedMsg:
		m.refresh()
		if !m.searching {
			m.search.SetValue(m.state.Filter.SearchQuery)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.store.SetSearchQuery("")
		m.refresh()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.store.SetSearchQuery(after)
		m.refresh()
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "/":
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd

	case "enter":
		r, ok := m.currentRow()
		if !ok {
			break
		}
		if r.isHeader() {
			m.store.ToggleCategoryCollapsed(r.category)
		} else {
			m.store.SelectEntry(r.entry, r.category)
		}
		m.refresh()

	case " ":
		if r, ok := m.currentRow(); ok {
			m.store.ToggleCategoryCollapsed(r.category)
			m.refresh()
		}

	case "esc":
		m.store.SelectEntry(nil, "")
		m.refresh()

	case "s":
		r, ok := m.currentRow()
		if !ok || r.isHeader() {
			break
		}
		next := nextStatus(r.entry.Status)
		m.store.UpdateStatus(r.category, r.entry.Name, next)
		m.notice = fmt.Sprintf("%s → %s", r.entry.Title(), next)
		m.refresh()

	case "t":
		m.store.SetTheme(nextTheme(m.state.Theme))
		m.refresh()

	case "b":
		m.store.ToggleSidebar()
		m.refresh()
	}
	return m, nil
}

func nextStatus(s catalog.Status) catalog.Status {
	all := catalog.AllStatuses()
	for i, candidate := range all {
		if candidate == s {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func nextTheme(t store.Theme) store.Theme {
	for i, candidate := range themeCycle {
		if candidate == t {
			return themeCycle[(i+1)%len(themeCycle)]
		}
	}
	return themeCycle[0]
}
