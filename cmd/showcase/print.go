package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/gnana997/showcase/pkg/catalog"
)

const maxWidth = 80

var (
	bold      = color.New(color.Bold).SprintFunc()
	faint     = color.New(color.Faint).SprintFunc()
	titleLine = color.New(color.Bold, color.Underline).SprintFunc()
)

func statusColor(s catalog.Status) string {
	switch s {
	case catalog.StatusComplete:
		return color.GreenString(string(s))
	case catalog.StatusInProgress:
		return color.YellowString(string(s))
	default:
		return faint(string(s))
	}
}

func newTable(headers ...any) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 50
	tbl.Wrap = true
	bolded := make([]any, len(headers))
	for i, h := range headers {
		bolded[i] = bold(h)
	}
	tbl.AddRow(bolded...)
	return tbl
}

func printTable(w io.Writer, tbl *uitable.Table) {
	fmt.Fprintln(w, tbl.String())
}

// printEntry prints a human-readable entry summary.
func printEntry(w io.Writer, category catalog.Category, e catalog.Entry) {
	fmt.Fprintf(w, "%s  [%s]  %s\n", bold(e.Title()), category, statusColor(e.Status))
	if e.Title() != e.Name {
		fmt.Fprintf(w, "  name: %s\n", e.Name)
	}
	if e.Description != "" {
		fmt.Fprintln(w)
		printWrapped(w, e.Description, 0, maxWidth)
	}
	printPresetSection(w, "Variants", e.Variants)
	printPresetSection(w, "Sizes", e.Sizes)
	printPresetSection(w, "States", e.States)
}

func printPresetSection(w io.Writer, title string, presets []catalog.Preset) {
	fmt.Fprintln(w)
	if len(presets) == 0 {
		fmt.Fprintf(w, "%s  %s\n", title, faint("(none)"))
		return
	}
	fmt.Fprintln(w, title)
	nameWidth := 0
	for _, p := range presets {
		nameWidth = max(nameWidth, len(p.Name))
	}
	for _, p := range presets {
		padding := strings.Repeat(" ", nameWidth-len(p.Name))
		fmt.Fprintf(w, "  %s%s  %s\n", p.Name, padding, faint(formatProps(p.Props)))
	}
}

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

// printWrapped prints text word-wrapped to width with the given indent.
func printWrapped(w io.Writer, text string, indent, width int) {
	prefix := strings.Repeat(" ", indent)
	line := prefix
	for _, word := range strings.Fields(text) {
		if len(line) > len(prefix) && len(line)+1+len(word) > width {
			fmt.Fprintln(w, line)
			line = prefix
		}
		if len(line) > len(prefix) {
			line += " "
		}
		line += word
	}
	if len(line) > len(prefix) {
		fmt.Fprintln(w, line)
	}
}

// progressBar renders pct as a fixed-width text bar.
func progressBar(pct, width int) string {
	filled := pct * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
