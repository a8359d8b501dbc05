package store

import (
	"sort"

	"github.com/gnana997/showcase/pkg/catalog"
)

// Selection is the currently selected entry and its category.
// Either both fields are set or neither is.
type Selection struct {
	Entry    *catalog.Entry   `json:"entry"`
	Category catalog.Category `json:"category"`
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return s.Entry == nil
}

func (s Selection) clone() Selection {
	if s.Entry == nil {
		return Selection{}
	}
	e := s.Entry.Clone()
	return Selection{Entry: &e, Category: s.Category}
}

// FilterState is the search query and the catalog view derived from it.
type FilterState struct {
	SearchQuery     string           `json:"search_query"`
	FilteredCatalog *catalog.Catalog `json:"filtered_catalog"`
	IsSearchActive  bool             `json:"is_search_active"`
}

// State is an immutable snapshot of everything the store holds.
type State struct {
	Revision        uint64                    `json:"revision"`
	Catalog         *catalog.Catalog          `json:"catalog"`
	Selection       Selection                 `json:"selection"`
	Filter          FilterState               `json:"filter"`
	Collapsed       []catalog.Category        `json:"collapsed"`
	Theme           Theme                     `json:"theme"`
	SidebarOpen     bool                      `json:"sidebar_open"`
	StatusOverrides map[string]catalog.Status `json:"status_overrides"`
}

// sortedCategories returns the members of set in lexical order.
func sortedCategories(set map[catalog.Category]bool) []catalog.Category {
	out := make([]catalog.Category, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
