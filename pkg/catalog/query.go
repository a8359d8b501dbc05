package catalog

import "strings"

// SearchResult holds an entry match together with its category and the
// field that matched.
type SearchResult struct {
	Category    Category `json:"category"`
	Entry       Entry    `json:"entry"`
	MatchReason string   `json:"match_reason"`
}

// ByCategory returns the entries of cat in stored order.
// An unknown category yields an empty slice.
func ByCategory(c *Catalog, cat Category) []Entry {
	s, ok := c.Section(cat)
	if !ok {
		return []Entry{}
	}
	return cloneEntries(s.Entries)
}

// All flattens the catalog, preserving category order and entry order.
func All(c *Catalog) []Entry {
	result := make([]Entry, 0, c.Len())
	if c == nil {
		return result
	}
	for _, s := range c.Sections {
		for _, e := range s.Entries {
			result = append(result, e.Clone())
		}
	}
	return result
}

// ByName returns the first entry whose name equals name exactly, scanning
// categories in order. The bool indicates whether an entry was found.
func ByName(c *Catalog, name string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	for _, s := range c.Sections {
		for _, e := range s.Entries {
			if e.Name == name {
				return e.Clone(), true
			}
		}
	}
	return Entry{}, false
}

// ByStatus returns every entry with the given status in flattened order.
func ByStatus(c *Catalog, status Status) []Entry {
	result := make([]Entry, 0)
	if c == nil {
		return result
	}
	for _, s := range c.Sections {
		for _, e := range s.Entries {
			if e.Status == status {
				result = append(result, e.Clone())
			}
		}
	}
	return result
}

// Matches reports whether e matches query: a case-insensitive substring of
// its name or description. The empty query matches every entry.
func Matches(e Entry, query string) bool {
	return matchReason(e, strings.ToLower(query)) != ""
}

// matchReason expects an already lower-cased query.
func matchReason(e Entry, query string) string {
	if query == "" {
		return "all"
	}
	if strings.Contains(strings.ToLower(e.Name), query) {
		return "name"
	}
	if strings.Contains(strings.ToLower(e.Description), query) {
		return "description"
	}
	return ""
}

// Search returns every entry matching query in flattened order.
// The query is used as-is (not trimmed); an empty query matches everything.
func Search(c *Catalog, query string) []Entry {
	results := SearchWithReasons(c, query)
	entries := make([]Entry, len(results))
	for i, r := range results {
		entries[i] = r.Entry
	}
	return entries
}

// SearchWithReasons is Search with the matching category and field reported
// for each hit.
func SearchWithReasons(c *Catalog, query string) []SearchResult {
	results := make([]SearchResult, 0)
	if c == nil {
		return results
	}
	query = strings.ToLower(query)
	for _, s := range c.Sections {
		for _, e := range s.Entries {
			if reason := matchReason(e, query); reason != "" {
				results = append(results, SearchResult{Category: s.Category, Entry: e.Clone(), MatchReason: reason})
			}
		}
	}
	return results
}

// Filter returns the catalog restricted to entries matching query.
// Categories without a match are omitted entirely. The empty query returns
// a full copy.
func Filter(c *Catalog, query string) *Catalog {
	if c == nil {
		return &Catalog{}
	}
	out := &Catalog{Name: c.Name, Version: c.Version, Sections: make([]Section, 0, len(c.Sections))}
	query = strings.ToLower(query)
	for _, s := range c.Sections {
		var matched []Entry
		for _, e := range s.Entries {
			if matchReason(e, query) != "" {
				matched = append(matched, e.Clone())
			}
		}
		if query == "" {
			// Keep empty categories when nothing is filtered.
			if matched == nil {
				matched = []Entry{}
			}
			out.Sections = append(out.Sections, Section{Category: s.Category, Entries: matched})
			continue
		}
		if len(matched) > 0 {
			out.Sections = append(out.Sections, Section{Category: s.Category, Entries: matched})
		}
	}
	return out
}

// UpdateStatus returns a copy of the catalog in which the first entry named
// name (in flattened order) has the given status. When no entry matches the
// copy is returned unchanged.
func UpdateStatus(c *Catalog, name string, status Status) *Catalog {
	out := c.Clone()
	for i := range out.Sections {
		for j := range out.Sections[i].Entries {
			if out.Sections[i].Entries[j].Name == name {
				out.Sections[i].Entries[j].Status = status
				return out
			}
		}
	}
	return out
}

// UpdateStatusIn is UpdateStatus scoped to one category. It reports whether
// an entry was changed.
func UpdateStatusIn(c *Catalog, cat Category, name string, status Status) (*Catalog, bool) {
	out := c.Clone()
	s, ok := out.Section(cat)
	if !ok {
		return out, false
	}
	for j := range s.Entries {
		if s.Entries[j].Name == name {
			s.Entries[j].Status = status
			return out, true
		}
	}
	return out, false
}

func cloneEntries(in []Entry) []Entry {
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}
