package store

import "github.com/gnana997/showcase/pkg/catalog"

// Action is a state transition understood by Store.Dispatch.
// The set of actions is closed: only the types in this file implement it.
type Action interface {
	actionName() string
}

// Select makes Entry the current selection within Category.
// The store does not check that Entry belongs to Category.
// A nil Entry or an empty Category clears the selection.
type Select struct {
	Entry    *catalog.Entry
	Category catalog.Category
}

// UpdateStatus sets the status of the entry identified by (Category, Name).
// Unknown pairs are ignored.
type UpdateStatus struct {
	Category catalog.Category
	Name     string
	Status   catalog.Status
}

// SetSearchQuery replaces the search query and recomputes the filtered view.
type SetSearchQuery struct {
	Query string
}

// ToggleCategoryCollapsed flips the collapsed flag of Category.
type ToggleCategoryCollapsed struct {
	Category catalog.Category
}

// SetTheme switches the UI theme and persists it. Names outside
// light, dark and system leave the state unchanged and are not saved.
type SetTheme struct {
	Theme Theme
}

// ToggleSidebar opens or closes the navigation sidebar.
type ToggleSidebar struct{}

// ReplaceCatalog swaps in a freshly loaded catalog. Recorded status
// overrides are replayed onto it so in-session progress survives a reload.
type ReplaceCatalog struct {
	Catalog *catalog.Catalog
}

func (Select) actionName() string                  { return "select" }
func (UpdateStatus) actionName() string            { return "update_status" }
func (SetSearchQuery) actionName() string          { return "set_search_query" }
func (ToggleCategoryCollapsed) actionName() string { return "toggle_category_collapsed" }
func (SetTheme) actionName() string                { return "set_theme" }
func (ToggleSidebar) actionName() string           { return "toggle_sidebar" }
func (ReplaceCatalog) actionName() string          { return "replace_catalog" }

// ActionName returns the stable snake_case name of a, for logs.
func ActionName(a Action) string {
	if a == nil {
		return ""
	}
	return a.actionName()
}
