package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/showcase/pkg/catalog"
)

func statusEnum() mcp.PropertyOption {
	statuses := catalog.AllStatuses()
	values := make([]string, len(statuses))
	for i, st := range statuses {
		values[i] = string(st)
	}
	return mcp.Enum(values...)
}

func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: listCategoriesTool(), Handler: s.handleListCategories},
		{Tool: listEntriesTool(), Handler: s.handleListEntries},
		{Tool: getEntryTool(), Handler: s.handleGetEntry},
		{Tool: searchEntriesTool(), Handler: s.handleSearchEntries},
		{Tool: selectEntryTool(), Handler: s.handleSelectEntry},
		{Tool: updateStatusTool(), Handler: s.handleUpdateStatus},
		{Tool: setSearchQueryTool(), Handler: s.handleSetSearchQuery},
		{Tool: toggleCategoryTool(), Handler: s.handleToggleCategory},
		{Tool: setThemeTool(), Handler: s.handleSetTheme},
		{Tool: toggleSidebarTool(), Handler: s.handleToggleSidebar},
		{Tool: getProgressTool(), Handler: s.handleGetProgress},
		{Tool: getStateTool(), Handler: s.handleGetState},
	}
}

func listCategoriesTool() mcp.Tool {
	return mcp.NewTool("list_categories",
		mcp.WithDescription("List catalog categories in display order with entry counts and collapsed state."),
	)
}

func listEntriesTool() mcp.Tool {
	return mcp.NewTool("list_entries",
		mcp.WithDescription("List catalog entries, optionally limited to one category or status. With filtered=true only entries matching the active search are listed."),
		mcp.WithString("category", mcp.Description("Category to list, e.g. forms.")),
		mcp.WithString("status", mcp.Description("Only entries with this status."), statusEnum()),
		mcp.WithBoolean("filtered", mcp.Description("Apply the active search query.")),
	)
}

func getEntryTool() mcp.Tool {
	return mcp.NewTool("get_entry",
		mcp.WithDescription("Get one entry with its variants, sizes and states. Without a category the first entry with the name wins."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Entry name, case-sensitive.")),
		mcp.WithString("category", mcp.Description("Category holding the entry.")),
	)
}

func searchEntriesTool() mcp.Tool {
	return mcp.NewTool("search_entries",
		mcp.WithDescription("Case-insensitive substring search over entry names and descriptions. Does not change the active search."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Text to look for.")),
	)
}

func selectEntryTool() mcp.Tool {
	return mcp.NewTool("select_entry",
		mcp.WithDescription("Select an entry for the detail view. An empty name clears the selection."),
		mcp.WithString("name", mcp.Description("Entry name; empty clears the selection.")),
		mcp.WithString("category", mcp.Description("Category holding the entry. Required when name is set.")),
	)
}

func updateStatusTool() mcp.Tool {
	return mcp.NewTool("update_status",
		mcp.WithDescription("Set the implementation status of one entry in one category."),
		mcp.WithString("category", mcp.Required(), mcp.Description("Category holding the entry.")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Entry name.")),
		mcp.WithString("status", mcp.Required(), mcp.Description("New status."), statusEnum()),
	)
}

func setSearchQueryTool() mcp.Tool {
	return mcp.NewTool("set_search_query",
		mcp.WithDescription("Set the active search query and return the filtered view. A blank query clears the search."),
		mcp.WithString("query", mcp.Description("Search text; blank clears.")),
	)
}

func toggleCategoryTool() mcp.Tool {
	return mcp.NewTool("toggle_category",
		mcp.WithDescription("Collapse or expand a category in the navigation sidebar."),
		mcp.WithString("category", mcp.Required(), mcp.Description("Category to toggle.")),
	)
}

func setThemeTool() mcp.Tool {
	return mcp.NewTool("set_theme",
		mcp.WithDescription("Set the color theme. The choice is persisted."),
		mcp.WithString("theme", mcp.Required(), mcp.Description("Theme to use."), mcp.Enum("light", "dark", "system")),
	)
}

func toggleSidebarTool() mcp.Tool {
	return mcp.NewTool("toggle_sidebar",
		mcp.WithDescription("Open or close the navigation sidebar."),
	)
}

func getProgressTool() mcp.Tool {
	return mcp.NewTool("get_progress",
		mcp.WithDescription("Count entries by status over the whole catalog, ignoring any active search."),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Return the current selection, search, collapsed categories, theme, sidebar state and status overrides."),
		mcp.WithBoolean("include_catalog", mcp.Description("Also return the full catalog.")),
	)
}
