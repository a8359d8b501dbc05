package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/showcase/pkg/catalog"
	"github.com/gnana997/showcase/pkg/store"
)

// Response shapes.

type categorySummary struct {
	Category   catalog.Category `json:"category"`
	EntryCount int              `json:"entry_count"`
	Collapsed  bool             `json:"collapsed"`
}

type entryResult struct {
	Category catalog.Category `json:"category"`
	catalog.Entry
}

type filterResult struct {
	SearchQuery    string             `json:"search_query"`
	IsSearchActive bool               `json:"is_search_active"`
	MatchCount     int                `json:"match_count"`
	Categories     []catalog.Category `json:"categories"`
	Revision       uint64             `json:"revision"`
}

type stateResult struct {
	Revision        uint64                    `json:"revision"`
	Selection       store.Selection           `json:"selection"`
	SearchQuery     string                    `json:"search_query"`
	IsSearchActive  bool                      `json:"is_search_active"`
	Collapsed       []catalog.Category        `json:"collapsed"`
	Theme           store.Theme               `json:"theme"`
	SidebarOpen     bool                      `json:"sidebar_open"`
	StatusOverrides map[string]catalog.Status `json:"status_overrides"`
	Progress        catalog.Progress          `json:"progress"`
	Catalog         *catalog.Catalog          `json:"catalog,omitempty"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// findEntry looks name up in category, or in every category when category
// is empty.
func findEntry(c *catalog.Catalog, category catalog.Category, name string) (entryResult, bool) {
	for _, sec := range c.Sections {
		if category != "" && sec.Category != category {
			continue
		}
		for _, e := range sec.Entries {
			if e.Name == name {
				return entryResult{Category: sec.Category, Entry: e}, true
			}
		}
	}
	return entryResult{}, false
}

func (s *Server) handleListCategories(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.store.Snapshot()
	collapsed := make(map[catalog.Category]bool, len(snap.Collapsed))
	for _, c := range snap.Collapsed {
		collapsed[c] = true
	}

	out := make([]categorySummary, 0, len(snap.Catalog.Sections))
	for _, sec := range snap.Catalog.Sections {
		out = append(out, categorySummary{
			Category:   sec.Category,
			EntryCount: len(sec.Entries),
			Collapsed:  collapsed[sec.Category],
		})
	}
	return jsonResult(out)
}

func (s *Server) handleListEntries(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := s.resolveCategory(req.GetString("category", ""))
	var status catalog.Status
	if raw := req.GetString("status", ""); raw != "" {
		st, err := catalog.ParseStatus(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		status = st
	}

	cat := s.store.Catalog()
	if req.GetBool("filtered", false) {
		cat = s.store.Filter().FilteredCatalog
	} else if category != "" && !cat.Has(category) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown category: %s", category)), nil
	}

	out := []entryResult{}
	for _, sec := range cat.Sections {
		if category != "" && sec.Category != category {
			continue
		}
		for _, e := range sec.Entries {
			if status != "" && e.Status != status {
				continue
			}
			out = append(out, entryResult{Category: sec.Category, Entry: e})
		}
	}
	return jsonResult(out)
}

func (s *Server) handleGetEntry(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category := s.resolveCategory(req.GetString("category", ""))

	found, ok := findEntry(s.store.Catalog(), category, name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("entry not found: %s", name)), nil
	}
	return jsonResult(found)
}

func (s *Server) handleSearchEntries(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results := catalog.SearchWithReasons(s.store.Catalog(), query)
	if results == nil {
		results = []catalog.SearchResult{}
	}
	return jsonResult(results)
}

func (s *Server) handleSelectEntry(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		s.store.SelectEntry(nil, "")
		return jsonResult(s.store.Selection())
	}

	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	found, ok := findEntry(s.store.Catalog(), s.resolveCategory(category), name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("entry %s not found in category %s", name, category)), nil
	}
	s.store.SelectEntry(&found.Entry, found.Category)
	return jsonResult(s.store.Selection())
}

func (s *Server) handleUpdateStatus(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Category string `json:"category"`
		Name     string `json:"name"`
		Status   string `json:"status"`
	}
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Category == "" || args.Name == "" {
		return mcp.NewToolResultError("category and name are required"), nil
	}
	status, err := catalog.ParseStatus(args.Status)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	category := s.resolveCategory(args.Category)
	if _, ok := findEntry(s.store.Catalog(), category, args.Name); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("entry %s not found in category %s", args.Name, args.Category)), nil
	}
	s.store.UpdateStatus(category, args.Name, status)

	found, _ := findEntry(s.store.Catalog(), category, args.Name)
	return jsonResult(found)
}

func (s *Server) handleSetSearchQuery(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.store.SetSearchQuery(req.GetString("query", ""))

	snap := s.store.Snapshot()
	f := snap.Filter
	cats := f.FilteredCatalog.Categories()
	if cats == nil {
		cats = []catalog.Category{}
	}
	return jsonResult(filterResult{
		SearchQuery:    f.SearchQuery,
		IsSearchActive: f.IsSearchActive,
		MatchCount:     f.FilteredCatalog.Len(),
		Categories:     cats,
		Revision:       snap.Revision,
	})
}

func (s *Server) handleToggleCategory(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cat := s.resolveCategory(category)
	if !s.store.Catalog().Has(cat) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown category: %s", category)), nil
	}
	s.store.ToggleCategoryCollapsed(cat)
	return jsonResult(map[string]any{
		"category":  cat,
		"collapsed": s.store.IsCollapsed(cat),
	})
}

func (s *Server) handleSetTheme(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("theme")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	theme, err := store.ParseTheme(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.store.SetTheme(theme)
	return jsonResult(map[string]any{"theme": s.store.Theme()})
}

func (s *Server) handleToggleSidebar(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.store.ToggleSidebar()
	return jsonResult(map[string]any{"sidebar_open": s.store.SidebarOpen()})
}

func (s *Server) handleGetProgress(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.store.Progress())
}

func (s *Server) handleGetState(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.store.Snapshot()
	out := stateResult{
		Revision:        snap.Revision,
		Selection:       snap.Selection,
		SearchQuery:     snap.Filter.SearchQuery,
		IsSearchActive:  snap.Filter.IsSearchActive,
		Collapsed:       snap.Collapsed,
		Theme:           snap.Theme,
		SidebarOpen:     snap.SidebarOpen,
		StatusOverrides: snap.StatusOverrides,
		Progress:        catalog.ComputeProgress(snap.Catalog),
	}
	if req.GetBool("include_catalog", false) {
		out.Catalog = snap.Catalog
	}
	return jsonResult(out)
}

// resolveCategory maps a user-typed category to the catalog's key. An exact
// match wins; otherwise the first category equal under case folding is used.
// Unknown names come back trimmed but otherwise unchanged.
func (s *Server) resolveCategory(raw string) catalog.Category {
	want := strings.TrimSpace(raw)
	if want == "" {
		return ""
	}
	cats := s.store.Catalog().Categories()
	if slices.Contains(cats, catalog.Category(want)) {
		return catalog.Category(want)
	}
	for _, c := range cats {
		if strings.EqualFold(string(c), want) {
			return c
		}
	}
	return catalog.Category(want)
}
