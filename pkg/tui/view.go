package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gnana997/showcase/pkg/catalog"
	"github.com/gnana997/showcase/pkg/store"
)

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	st := newStyles(paletteFor(m.state.Theme))

	body := m.renderDetail(st)
	if m.state.SidebarOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, st.sidebar.Render(m.renderSidebar(st)), st.detail.Render(body))
	}

	sections := []string{m.renderHeader(st), m.search.View(), body, m.renderFooter(st)}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func paletteFor(t store.Theme) palette {
	switch t {
	case store.ThemeLight:
		return lightPalette
	case store.ThemeDark:
		return darkPalette
	default:
		return systemPalette
	}
}

func (m Model) renderHeader(st styles) string {
	p := catalog.ComputeProgress(m.state.Catalog)
	name := m.state.Catalog.Name
	if strings.TrimSpace(name) == "" {
		name = "Showcase"
	}
	ratio := 0.0
	if p.Total > 0 {
		ratio = float64(p.Completed) / float64(p.Total)
	}
	label := fmt.Sprintf("%d/%d complete (%d%%)", p.Completed, p.Total, p.Percentage)
	return lipgloss.JoinHorizontal(lipgloss.Left,
		st.title.Render(name), "  ", m.bar.ViewAs(ratio), " ", st.muted.Render(label))
}

func (m Model) renderSidebar(st styles) string {
	if len(m.rows) == 0 {
		if m.state.Filter.IsSearchActive {
			return st.muted.Render(fmt.Sprintf("no widgets match %q", m.state.Filter.SearchQuery))
		}
		return st.muted.Render("catalog is empty")
	}

	collapsed := make(map[catalog.Category]bool, len(m.state.Collapsed))
	for _, c := range m.state.Collapsed {
		collapsed[c] = true
	}
	sel := m.state.Selection

	lines := make([]string, 0, len(m.rows))
	for i, r := range m.rows {
		pointer := "  "
		if i == m.cursor {
			pointer = st.cursor.Render("> ")
		}
		if r.isHeader() {
			arrow := "▾"
			if collapsed[r.category] {
				arrow = "▸"
			}
			lines = append(lines, pointer+st.header.Render(fmt.Sprintf("%s %s (%d)", arrow, r.category, r.matches)))
			continue
		}
		text := st.item.Render(r.entry.Title())
		if sel.Entry != nil && sel.Category == r.category && sel.Entry.Name == r.entry.Name {
			text = st.selected.Render(text)
		}
		lines = append(lines, fmt.Sprintf("%s  %s %s", pointer, statusIcon(r.entry.Status), text))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDetail(st styles) string {
	sel := m.state.Selection
	if sel.Entry == nil {
		return st.muted.Render("select a widget with enter")
	}
	e := sel.Entry

	var b strings.Builder
	b.WriteString(st.title.Render(e.Title()))
	b.WriteString(st.muted.Render(fmt.Sprintf("  %s · %s", sel.Category, e.Status)))
	if e.Description != "" {
		b.WriteString("\n" + e.Description)
	}
	writePresets(&b, st, "Variants", e.Variants)
	writePresets(&b, st, "Sizes", e.Sizes)
	writePresets(&b, st, "States", e.States)
	return b.String()
}

func writePresets(b *strings.Builder, st styles, title string, presets []catalog.Preset) {
	if len(presets) == 0 {
		return
	}
	b.WriteString("\n" + st.section.Render(title))
	for _, p := range presets {
		b.WriteString("\n  " + p.Name)
		if props := formatProps(p.Props); props != "" {
			b.WriteString(st.muted.Render("  " + props))
		}
	}
}

// formatProps renders props as key=value pairs in key order.
func formatProps(props map[string]any) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, props[k])
	}
	return strings.Join(parts, " ")
}

func (m Model) renderFooter(st styles) string {
	help := "↑/↓ move · enter select/collapse · / search · s status · t theme (" + string(m.state.Theme) + ") · b sidebar · q quit"
	if m.notice != "" {
		return st.muted.Render(m.notice + "\n" + help)
	}
	return st.muted.Render(help)
}

// statusIcon returns the glyph for an entry status.
func statusIcon(s catalog.Status) string {
	switch s {
	case catalog.StatusComplete:
		return completeStyle.Render("●")
	case catalog.StatusInProgress:
		return inProgressStyle.Render("◐")
	default:
		return notStartedStyle.Render("○")
	}
}
