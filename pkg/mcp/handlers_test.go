package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/showcase/pkg/catalog"
	"github.com/gnana997/showcase/pkg/mcplog"
	"github.com/gnana997/showcase/pkg/store"
	"github.com/gnana997/showcase/pkg/util"
)

// --- helpers ---

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Name:    "test",
		Version: "1.0",
		Sections: []catalog.Section{
			{Category: catalog.CategoryForms, Entries: []catalog.Entry{
				{Name: "Button", Description: "A clickable button", Status: catalog.StatusComplete,
					Variants: []catalog.Preset{{Name: "outlined", Props: map[string]any{"variant": "outlined"}}}},
				{Name: "TextField", Description: "Single-line text input", Status: catalog.StatusNotStarted},
				{Name: "Select", Description: "Dropdown picker", Status: catalog.StatusInProgress},
			}},
			{Category: catalog.CategoryFeedback, Entries: []catalog.Entry{
				{Name: "Alert", Description: "Important message", Status: catalog.StatusComplete},
			}},
		},
	}
}

func testServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st := store.New(testCatalog(), store.Options{Logger: util.NopLogger()})
	return NewServer(st, nil, util.NopLogger()), st
}

func callTool(t *testing.T, s *Server, req mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	var handler server.ToolHandlerFunc
	for _, tool := range s.tools() {
		if tool.Tool.Name == req.Params.Name {
			handler = tool.Handler
		}
	}
	require.NotNil(t, handler, "unknown tool: %s", req.Params.Name)

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

func decode(t *testing.T, result *mcp.CallToolResult, v any) {
	t.Helper()
	require.False(t, result.IsError, resultJSON(t, result))
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), v))
}

// --- tests ---

func TestTools_AllRegistered(t *testing.T) {
	s, _ := testServer(t)
	var names []string
	for _, tool := range s.tools() {
		names = append(names, tool.Tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"list_categories", "list_entries", "get_entry", "search_entries",
		"select_entry", "update_status", "set_search_query", "toggle_category",
		"set_theme", "toggle_sidebar", "get_progress", "get_state",
	}, names)
}

func TestHandleListCategories(t *testing.T) {
	s, st := testServer(t)
	st.ToggleCategoryCollapsed(catalog.CategoryFeedback)

	var cats []categorySummary
	decode(t, callTool(t, s, makeRequest("list_categories", nil)), &cats)
	require.Len(t, cats, 2)
	assert.Equal(t, categorySummary{Category: catalog.CategoryForms, EntryCount: 3}, cats[0])
	assert.True(t, cats[1].Collapsed)
}

func TestHandleListEntries(t *testing.T) {
	s, _ := testServer(t)

	var all []map[string]any
	decode(t, callTool(t, s, makeRequest("list_entries", nil)), &all)
	assert.Len(t, all, 4)
	assert.Equal(t, "forms", all[0]["category"])
	assert.Equal(t, "Button", all[0]["name"])

	var forms []map[string]any
	decode(t, callTool(t, s, makeRequest("list_entries", map[string]any{"category": "Forms", "status": "complete"})), &forms)
	require.Len(t, forms, 1)
	assert.Equal(t, "Button", forms[0]["name"])

	result := callTool(t, s, makeRequest("list_entries", map[string]any{"category": "nope"}))
	assert.True(t, result.IsError)
}

func TestHandleListEntries_Filtered(t *testing.T) {
	s, st := testServer(t)
	st.SetSearchQuery("alert")

	var entries []map[string]any
	decode(t, callTool(t, s, makeRequest("list_entries", map[string]any{"filtered": true})), &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "Alert", entries[0]["name"])
}

func TestHandleGetEntry(t *testing.T) {
	s, _ := testServer(t)

	var e map[string]any
	decode(t, callTool(t, s, makeRequest("get_entry", map[string]any{"name": "Button"})), &e)
	assert.Equal(t, "forms", e["category"])
	assert.Len(t, e["variants"], 1)

	assert.True(t, callTool(t, s, makeRequest("get_entry", map[string]any{"name": "Button", "category": "feedback"})).IsError)
	assert.True(t, callTool(t, s, makeRequest("get_entry", nil)).IsError)
}

func TestHandleSearchEntries(t *testing.T) {
	s, st := testServer(t)

	var results []catalog.SearchResult
	decode(t, callTool(t, s, makeRequest("search_entries", map[string]any{"query": "dropdown"})), &results)
	require.Len(t, results, 1)
	assert.Equal(t, "Select", results[0].Entry.Name)
	assert.Equal(t, "description", results[0].MatchReason)

	assert.False(t, st.Filter().IsSearchActive, "search_entries must not change the active search")
}

func TestHandleSelectEntry(t *testing.T) {
	s, st := testServer(t)

	var sel store.Selection
	decode(t, callTool(t, s, makeRequest("select_entry", map[string]any{"name": "Alert", "category": "feedback"})), &sel)
	require.NotNil(t, sel.Entry)
	assert.Equal(t, "Alert", sel.Entry.Name)
	assert.Equal(t, catalog.CategoryFeedback, st.Selection().Category)

	assert.True(t, callTool(t, s, makeRequest("select_entry", map[string]any{"name": "Alert", "category": "forms"})).IsError)
	assert.True(t, callTool(t, s, makeRequest("select_entry", map[string]any{"name": "Alert"})).IsError)

	decode(t, callTool(t, s, makeRequest("select_entry", nil)), &sel)
	assert.True(t, st.Selection().IsEmpty())
}

func TestHandleUpdateStatus(t *testing.T) {
	s, st := testServer(t)

	var e map[string]any
	decode(t, callTool(t, s, makeRequest("update_status", map[string]any{
		"category": "forms", "name": "TextField", "status": "IN_PROGRESS",
	})), &e)
	assert.Equal(t, "IN_PROGRESS", e["status"])
	assert.Equal(t, catalog.StatusInProgress, st.StatusOverrides()["TextField"])
	assert.Equal(t, 2, st.Progress().InProgress)

	assert.True(t, callTool(t, s, makeRequest("update_status", map[string]any{
		"category": "feedback", "name": "TextField", "status": "COMPLETE",
	})).IsError)
	assert.True(t, callTool(t, s, makeRequest("update_status", map[string]any{
		"category": "forms", "name": "TextField", "status": "DONE",
	})).IsError)
}

func TestHandleSetSearchQuery(t *testing.T) {
	s, _ := testServer(t)

	var f filterResult
	decode(t, callTool(t, s, makeRequest("set_search_query", map[string]any{"query": "alert"})), &f)
	assert.True(t, f.IsSearchActive)
	assert.Equal(t, 1, f.MatchCount)
	assert.Equal(t, []catalog.Category{catalog.CategoryFeedback}, f.Categories)

	decode(t, callTool(t, s, makeRequest("set_search_query", map[string]any{"query": "   "})), &f)
	assert.False(t, f.IsSearchActive)
	assert.Equal(t, 4, f.MatchCount)
}

func TestHandleToggleCategory(t *testing.T) {
	s, _ := testServer(t)

	var out map[string]any
	decode(t, callTool(t, s, makeRequest("toggle_category", map[string]any{"category": "forms"})), &out)
	assert.Equal(t, true, out["collapsed"])
	decode(t, callTool(t, s, makeRequest("toggle_category", map[string]any{"category": "forms"})), &out)
	assert.Equal(t, false, out["collapsed"])
}

func TestHandleToggleCategory_Unknown(t *testing.T) {
	s, st := testServer(t)
	assert.True(t, callTool(t, s, makeRequest("toggle_category", map[string]any{"category": "charts"})).IsError)
	assert.Empty(t, st.Collapsed())
}

func mixedCaseServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	cat := &catalog.Catalog{Name: "mixed", Sections: []catalog.Section{
		{Category: "Forms", Entries: []catalog.Entry{
			{Name: "Button", Status: catalog.StatusNotStarted},
		}},
		{Category: "forms", Entries: []catalog.Entry{
			{Name: "Button", Status: catalog.StatusInProgress},
		}},
		{Category: "DataDisplay", Entries: []catalog.Entry{
			{Name: "Table", Status: catalog.StatusNotStarted},
		}},
	}}
	require.Empty(t, cat.Validate())
	st := store.New(cat, store.Options{Logger: util.NopLogger()})
	return NewServer(st, nil, util.NopLogger()), st
}

func TestHandlers_MixedCaseCategory(t *testing.T) {
	s, st := mixedCaseServer(t)

	var updated entryResult
	decode(t, callTool(t, s, makeRequest("update_status", map[string]any{
		"category": "Forms", "name": "Button", "status": "COMPLETE",
	})), &updated)
	assert.Equal(t, catalog.Category("Forms"), updated.Category)
	assert.Equal(t, catalog.StatusComplete, updated.Status)

	forms, _ := st.Catalog().Section("forms")
	assert.Equal(t, catalog.StatusInProgress, forms.Entries[0].Status, "exact match wins over case folding")

	var toggled map[string]any
	decode(t, callTool(t, s, makeRequest("toggle_category", map[string]any{"category": "Forms"})), &toggled)
	assert.Equal(t, "Forms", toggled["category"])
	assert.True(t, st.IsCollapsed("Forms"))
	assert.False(t, st.IsCollapsed("forms"))

	var entry entryResult
	decode(t, callTool(t, s, makeRequest("get_entry", map[string]any{"category": " Forms ", "name": "Button"})), &entry)
	assert.Equal(t, catalog.Category("Forms"), entry.Category)

	var sel store.Selection
	decode(t, callTool(t, s, makeRequest("select_entry", map[string]any{"category": "datadisplay", "name": "Table"})), &sel)
	assert.Equal(t, catalog.Category("DataDisplay"), sel.Category)
}

func TestHandleSetTheme(t *testing.T) {
	s, st := testServer(t)

	var out map[string]any
	decode(t, callTool(t, s, makeRequest("set_theme", map[string]any{"theme": "dark"})), &out)
	assert.Equal(t, "dark", out["theme"])
	assert.Equal(t, store.ThemeDark, st.Theme())

	assert.True(t, callTool(t, s, makeRequest("set_theme", map[string]any{"theme": "sepia"})).IsError)
}

func TestHandleToggleSidebar(t *testing.T) {
	s, _ := testServer(t)

	var out map[string]any
	decode(t, callTool(t, s, makeRequest("toggle_sidebar", nil)), &out)
	assert.Equal(t, false, out["sidebar_open"])
}

func TestHandleGetProgress(t *testing.T) {
	s, st := testServer(t)
	st.SetSearchQuery("alert")

	var p catalog.Progress
	decode(t, callTool(t, s, makeRequest("get_progress", nil)), &p)
	assert.Equal(t, catalog.Progress{Total: 4, Completed: 2, InProgress: 1, NotStarted: 1, Percentage: 50}, p)
}

func TestHandleGetState(t *testing.T) {
	s, st := testServer(t)
	st.SetSearchQuery("btn")
	st.ToggleSidebar()

	var out stateResult
	decode(t, callTool(t, s, makeRequest("get_state", nil)), &out)
	assert.Equal(t, "btn", out.SearchQuery)
	assert.True(t, out.IsSearchActive)
	assert.False(t, out.SidebarOpen)
	assert.Equal(t, store.ThemeSystem, out.Theme)
	assert.Nil(t, out.Catalog)
	assert.Equal(t, uint64(2), out.Revision)

	decode(t, callTool(t, s, makeRequest("get_state", map[string]any{"include_catalog": true})), &out)
	require.NotNil(t, out.Catalog)
	assert.Equal(t, 4, out.Catalog.Len())
}

// --- end to end through the protocol, with call logging ---

func TestServer_InProcessWithCallLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "calls.jsonl")
	calls, err := mcplog.Open(logPath)
	require.NoError(t, err)

	st := store.New(testCatalog(), store.Options{Logger: util.NopLogger()})
	s := NewServer(st, calls, util.NopLogger())

	ctx := context.Background()
	c, err := client.NewInProcessClient(s.MCPServer())
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "showcase-test", Version: "1.0.0"}
	initResult, err := c.Initialize(ctx, initReq)
	require.NoError(t, err)
	assert.Equal(t, "showcase", initResult.ServerInfo.Name)

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)
	assert.Len(t, tools.Tools, 12)

	_, err = c.CallTool(ctx, makeRequest("get_progress", nil))
	require.NoError(t, err)
	_, err = c.CallTool(ctx, makeRequest("update_status", map[string]any{
		"category": "forms", "name": "Select", "status": "COMPLETE",
	}))
	require.NoError(t, err)
	require.NoError(t, calls.Close())

	entries, err := mcplog.ReadFile(logPath)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "get_progress", entries[0].Tool)
	assert.False(t, entries[0].Changed())
	assert.Equal(t, "update_status", entries[1].Tool)
	assert.True(t, entries[1].Changed())
	assert.Equal(t, "Select", entries[1].Args["name"])
	assert.Equal(t, 3, st.Progress().Completed)
}
