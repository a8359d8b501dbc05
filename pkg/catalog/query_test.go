package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func testCatalog() *Catalog {
	return &Catalog{
		Name:    "test",
		Version: "1.0",
		Sections: []Section{
			{Category: CategoryForms, Entries: []Entry{
				{Name: "Button", Description: "A clickable button", Status: StatusComplete},
				{Name: "TextField", Description: "Single-line text input", Status: StatusNotStarted},
				{Name: "Select", Description: "Dropdown picker", Status: StatusInProgress},
			}},
			{Category: CategoryFeedback, Entries: []Entry{
				{Name: "Alert", Description: "Important message", Status: StatusComplete},
			}},
			{Category: CategoryUtils, Entries: []Entry{}},
		},
	}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

// --- ByCategory ---

func TestByCategory(t *testing.T) {
	got := ByCategory(testCatalog(), CategoryForms)
	assert.Equal(t, []string{"Button", "TextField", "Select"}, names(got))
}

func TestByCategory_Unknown(t *testing.T) {
	got := ByCategory(testCatalog(), "nope")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestByCategory_NilCatalog(t *testing.T) {
	assert.Empty(t, ByCategory(nil, CategoryForms))
}

// --- All ---

func TestAll_PreservesOrder(t *testing.T) {
	assert.Equal(t, []string{"Button", "TextField", "Select", "Alert"}, names(All(testCatalog())))
}

// --- ByName ---

func TestByName(t *testing.T) {
	e, ok := ByName(testCatalog(), "Alert")
	require.True(t, ok)
	assert.Equal(t, "Important message", e.Description)
}

func TestByName_CaseSensitive(t *testing.T) {
	_, ok := ByName(testCatalog(), "alert")
	assert.False(t, ok)
}

func TestByName_FirstMatchWins(t *testing.T) {
	c := testCatalog()
	c.Sections[1].Entries = append(c.Sections[1].Entries, Entry{Name: "Button", Description: "second"})
	e, ok := ByName(c, "Button")
	require.True(t, ok)
	assert.Equal(t, "A clickable button", e.Description)
}

// --- ByStatus ---

func TestByStatus(t *testing.T) {
	c := testCatalog()
	assert.Equal(t, []string{"Button", "Alert"}, names(ByStatus(c, StatusComplete)))
	assert.Equal(t, []string{"Select"}, names(ByStatus(c, StatusInProgress)))
	assert.Equal(t, []string{"TextField"}, names(ByStatus(c, StatusNotStarted)))
}

// --- Search ---

func TestSearch_ByName(t *testing.T) {
	assert.Equal(t, []string{"Button"}, names(Search(testCatalog(), "BUTT")))
}

func TestSearch_ByDescription(t *testing.T) {
	assert.Equal(t, []string{"Select"}, names(Search(testCatalog(), "dropdown")))
}

func TestSearch_EmptyMatchesEverything(t *testing.T) {
	assert.Len(t, Search(testCatalog(), ""), 4)
}

func TestSearch_NoMatch(t *testing.T) {
	got := Search(testCatalog(), "carousel")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchWithReasons(t *testing.T) {
	results := SearchWithReasons(testCatalog(), "t")
	require.NotEmpty(t, results)

	byName := make(map[string]SearchResult)
	for _, r := range results {
		byName[r.Entry.Name] = r
	}
	assert.Equal(t, "name", byName["Button"].MatchReason)
	assert.Equal(t, CategoryForms, byName["Button"].Category)
	assert.Equal(t, "name", byName["Alert"].MatchReason)
	assert.Equal(t, CategoryFeedback, byName["Alert"].Category)
	assert.Equal(t, "name", byName["Select"].MatchReason)
}

// --- Filter ---

func TestFilter_OmitsCategoriesWithoutMatches(t *testing.T) {
	got := Filter(testCatalog(), "alert")
	require.Len(t, got.Sections, 1)
	assert.Equal(t, CategoryFeedback, got.Sections[0].Category)
	assert.Equal(t, []string{"Alert"}, names(got.Sections[0].Entries))
	assert.False(t, got.Has(CategoryForms))
}

func TestFilter_EmptyQueryKeepsEverything(t *testing.T) {
	got := Filter(testCatalog(), "")
	assert.Equal(t, testCatalog(), got)
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	c := testCatalog()
	got := Filter(c, "button")
	got.Sections[0].Entries[0].Status = StatusNotStarted
	assert.Equal(t, StatusComplete, c.Sections[0].Entries[0].Status)
}

// --- UpdateStatus ---

func TestUpdateStatus(t *testing.T) {
	c := testCatalog()
	got := UpdateStatus(c, "TextField", StatusComplete)

	assert.Equal(t, StatusComplete, got.Sections[0].Entries[1].Status)
	assert.Equal(t, StatusNotStarted, c.Sections[0].Entries[1].Status, "input must not change")
	assert.Equal(t, names(All(c)), names(All(got)))
}

func TestUpdateStatus_FirstMatchOnly(t *testing.T) {
	c := testCatalog()
	c.Sections[1].Entries = append(c.Sections[1].Entries, Entry{Name: "Button", Status: StatusNotStarted})

	got := UpdateStatus(c, "Button", StatusInProgress)
	assert.Equal(t, StatusInProgress, got.Sections[0].Entries[0].Status)
	assert.Equal(t, StatusNotStarted, got.Sections[1].Entries[1].Status)
}

func TestUpdateStatus_Unknown(t *testing.T) {
	c := testCatalog()
	assert.Equal(t, c, UpdateStatus(c, "Nope", StatusComplete))
}

func TestUpdateStatusIn(t *testing.T) {
	c := testCatalog()
	c.Sections[1].Entries = append(c.Sections[1].Entries, Entry{Name: "Button", Status: StatusNotStarted})

	got, ok := UpdateStatusIn(c, CategoryFeedback, "Button", StatusComplete)
	require.True(t, ok)
	assert.Equal(t, StatusComplete, got.Sections[1].Entries[1].Status)
	assert.Equal(t, StatusComplete, got.Sections[0].Entries[0].Status)

	_, ok = UpdateStatusIn(c, CategoryUtils, "Button", StatusComplete)
	assert.False(t, ok)
	_, ok = UpdateStatusIn(c, "nope", "Button", StatusComplete)
	assert.False(t, ok)
}

// --- Progress ---

func TestComputeProgress_ExampleScenario(t *testing.T) {
	assert.Equal(t, Progress{Total: 4, Completed: 2, InProgress: 1, NotStarted: 1, Percentage: 50}, ComputeProgress(testCatalog()))
}

func TestComputeProgress_Boundaries(t *testing.T) {
	assert.Equal(t, Progress{}, ComputeProgress(&Catalog{}))
	assert.Equal(t, Progress{}, ComputeProgress(nil))

	all := &Catalog{Sections: []Section{{Category: CategoryForms, Entries: []Entry{
		{Name: "A", Status: StatusComplete},
		{Name: "B", Status: StatusComplete},
	}}}}
	assert.Equal(t, 100, ComputeProgress(all).Percentage)
}

func TestComputeProgress_Rounds(t *testing.T) {
	c := &Catalog{Sections: []Section{{Category: CategoryForms, Entries: []Entry{
		{Name: "A", Status: StatusComplete},
		{Name: "B", Status: StatusNotStarted},
		{Name: "C", Status: StatusNotStarted},
	}}}}
	assert.Equal(t, 33, ComputeProgress(c).Percentage)

	c.Sections[0].Entries[1].Status = StatusComplete
	assert.Equal(t, 67, ComputeProgress(c).Percentage)
}
