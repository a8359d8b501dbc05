package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	accent, muted, text, border lipgloss.TerminalColor
}

var (
	lightPalette = palette{accent: lipgloss.Color("25"), muted: lipgloss.Color("245"), text: lipgloss.Color("235"), border: lipgloss.Color("250")}
	darkPalette  = palette{accent: lipgloss.Color("205"), muted: lipgloss.Color("244"), text: lipgloss.Color("252"), border: lipgloss.Color("238")}
	// systemPalette lets the terminal background pick.
	systemPalette = palette{
		accent: lipgloss.AdaptiveColor{Light: "25", Dark: "205"},
		muted:  lipgloss.AdaptiveColor{Light: "245", Dark: "244"},
		text:   lipgloss.AdaptiveColor{Light: "235", Dark: "252"},
		border: lipgloss.AdaptiveColor{Light: "250", Dark: "238"},
	}

	completeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	inProgressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	notStartedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	item     lipgloss.Style
	cursor   lipgloss.Style
	muted    lipgloss.Style
	sidebar  lipgloss.Style
	detail   lipgloss.Style
	section  lipgloss.Style
	selected lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		header:   lipgloss.NewStyle().Bold(true).Foreground(p.text),
		item:     lipgloss.NewStyle().Foreground(p.text),
		cursor:   lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		muted:    lipgloss.NewStyle().Foreground(p.muted),
		sidebar:  lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(p.border).PaddingRight(1).Width(32),
		detail:   lipgloss.NewStyle().PaddingLeft(2),
		section:  lipgloss.NewStyle().Bold(true).Foreground(p.accent).MarginTop(1),
		selected: lipgloss.NewStyle().Underline(true),
	}
}
