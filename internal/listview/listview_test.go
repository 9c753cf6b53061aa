package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	Title      string
	CategoryID string
	Keywords   []string
}

func titleController(pageSize int) *Controller[testItem] {
	return NewCategorized(pageSize, func(it testItem, q string) bool {
		return TitleMatch(it.Title, q)
	}, func(it testItem) string {
		return it.CategoryID
	})
}

func forumController(pageSize int) *Controller[testItem] {
	return New(pageSize, func(it testItem, q string) bool {
		return KeywordMatch(it.Title, it.Keywords, q)
	})
}

func TestPaginationBasics(t *testing.T) {
	c := titleController(1)
	c.SetItems([]testItem{
		{Title: "Irrigation basics", CategoryID: "A"},
		{Title: "Soil health", CategoryID: "B"},
	})

	assert.Equal(t, 2, c.TotalPages())

	page := c.VisiblePage()
	require.Len(t, page, 1)
	assert.Equal(t, "Irrigation basics", page[0].Title)

	c.SetPage(2)
	page = c.VisiblePage()
	require.Len(t, page, 1)
	assert.Equal(t, "Soil health", page[0].Title)
}

func TestSearchCaseInsensitive(t *testing.T) {
	c := titleController(1)
	c.SetItems([]testItem{
		{Title: "Irrigation basics", CategoryID: "A"},
		{Title: "Soil health", CategoryID: "B"},
	})

	c.SetSearchText("soil")

	matches := c.Matches()
	require.Len(t, matches, 1)
	assert.Equal(t, "Soil health", matches[0].Title)
	assert.Equal(t, 1, c.TotalPages())
}

func TestSetPageOutOfRangeIsNoOp(t *testing.T) {
	c := titleController(2)
	c.SetItems([]testItem{
		{Title: "a"}, {Title: "b"}, {Title: "c"},
	})
	require.Equal(t, 2, c.TotalPages())

	for _, n := range []int{0, -1, 3, 100} {
		c.SetPage(n)
		assert.Equal(t, 1, c.Page(), "SetPage(%d) must not move off page 1", n)
	}

	c.SetPage(2)
	assert.Equal(t, 2, c.Page())
}

func TestTotalPagesNeverBelowOne(t *testing.T) {
	c := titleController(6)
	assert.Equal(t, 1, c.TotalPages())

	c.SetItems(nil)
	assert.Equal(t, 1, c.TotalPages())

	c.SetSearchText("matches nothing at all")
	c.SetItems([]testItem{{Title: "x"}})
	assert.Equal(t, 1, c.TotalPages())
	assert.Empty(t, c.VisiblePage())
}

func TestSearchAndCategoryResetPage(t *testing.T) {
	c := titleController(1)
	c.SetItems([]testItem{{Title: "a"}, {Title: "b"}, {Title: "c"}})
	c.SetCategories([]Category{{ID: "1", Name: "Hidroponik"}})

	c.SetPage(3)
	require.Equal(t, 3, c.Page())

	c.SetSearchText("")
	assert.Equal(t, 1, c.Page())

	c.SetPage(2)
	c.SetCategory("Hidroponik")
	assert.Equal(t, 1, c.Page())
}

func TestSetPageDoesNotTouchQuery(t *testing.T) {
	c := titleController(1)
	c.SetItems([]testItem{{Title: "soil a"}, {Title: "soil b"}})
	c.SetSearchText("soil")

	c.SetPage(2)
	assert.Equal(t, "soil", c.SearchText())
	assert.Equal(t, CategoryAll, c.SelectedCategory())
}

func TestVisiblePageIsPure(t *testing.T) {
	c := titleController(2)
	c.SetItems([]testItem{{Title: "a"}, {Title: "b"}, {Title: "c"}})

	first := c.VisiblePage()
	second := c.VisiblePage()
	assert.Equal(t, first, second)
	assert.Equal(t, c.Page(), 1)
}

func TestMissingTitleStillMatchesEmptySearch(t *testing.T) {
	c := titleController(6)
	c.SetItems([]testItem{{Title: "", CategoryID: "A"}})

	assert.Len(t, c.Matches(), 1, "an item without a title must not be dropped")

	c.SetSearchText("anything")
	assert.Empty(t, c.Matches())
}

func TestKeywordMatchForumStyle(t *testing.T) {
	c := forumController(10)
	c.SetItems([]testItem{
		{Title: "X", Keywords: []string{"irrigation", "drip"}},
		{Title: "Composting", Keywords: nil},
	})

	c.SetSearchText("drip")
	matches := c.Matches()
	require.Len(t, matches, 1)
	assert.Equal(t, "X", matches[0].Title)

	c.SetSearchText("compost")
	matches = c.Matches()
	require.Len(t, matches, 1)
	assert.Equal(t, "Composting", matches[0].Title)
}

func TestCategoryFallbackOnUnknownName(t *testing.T) {
	c := titleController(6)
	c.SetItems([]testItem{
		{Title: "a", CategoryID: "1"},
		{Title: "b", CategoryID: "2"},
	})
	c.SetCategories([]Category{
		{ID: "1", Name: "Pertanian"},
		{ID: "2", Name: "Peternakan"},
	})

	c.SetCategory("Peternakan")
	require.Len(t, c.Matches(), 1)

	c.SetCategory("NonexistentName")
	assert.Equal(t, CategoryAll, c.SelectedCategory())
	assert.Len(t, c.Matches(), 2, "unknown category must fall back to unfiltered")
}

func TestCategoryResolutionByID(t *testing.T) {
	c := titleController(6)
	c.SetCategories([]Category{{ID: "7", Name: "Hortikultura"}})

	c.SetCategory("7")
	assert.Equal(t, "7", c.SelectedCategory())
}

func TestCategoriesPrependAll(t *testing.T) {
	c := titleController(6)
	c.SetCategories([]Category{{ID: "1", Name: "Pangan"}})

	cats := c.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, CategoryAll, cats[0].ID)
	assert.Equal(t, "Pangan", cats[1].Name)
}

func TestMatchSetMonotonicUnderConstraints(t *testing.T) {
	c := titleController(6)
	c.SetItems([]testItem{
		{Title: "soil basics", CategoryID: "1"},
		{Title: "soil advanced", CategoryID: "2"},
		{Title: "water", CategoryID: "1"},
	})
	c.SetCategories([]Category{{ID: "1", Name: "Tanah"}, {ID: "2", Name: "Air"}})

	unconstrained := len(c.Matches())

	c.SetSearchText("soil")
	withSearch := len(c.Matches())
	assert.LessOrEqual(t, withSearch, unconstrained)

	c.SetCategory("Tanah")
	withBoth := len(c.Matches())
	assert.LessOrEqual(t, withBoth, withSearch)
}

func TestVisiblePageBounds(t *testing.T) {
	c := titleController(4)
	items := make([]testItem, 10)
	for i := range items {
		items[i] = testItem{Title: "item"}
	}
	c.SetItems(items)

	require.Equal(t, 3, c.TotalPages())
	for page := 1; page <= c.TotalPages(); page++ {
		c.SetPage(page)
		got := len(c.VisiblePage())
		assert.LessOrEqual(t, got, c.PageSize())
		if page < c.TotalPages() {
			assert.Equal(t, c.PageSize(), got)
		}
	}
	c.SetPage(3)
	assert.Len(t, c.VisiblePage(), 2)
}

func TestHasPrevHasNext(t *testing.T) {
	c := titleController(1)
	c.SetItems([]testItem{{Title: "a"}, {Title: "b"}})

	assert.False(t, c.HasPrev())
	assert.True(t, c.HasNext())

	c.SetPage(2)
	assert.True(t, c.HasPrev())
	assert.False(t, c.HasNext())
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     bool
	}{
		{"empty needle matches", "anything", "", true},
		{"both empty", "", "", true},
		{"case folded", "Budidaya PADI", "padi", true},
		{"whitespace trimmed", "  Soil Health  ", " soil ", true},
		{"no match", "water", "soil", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsFold(tt.haystack, tt.needle))
		})
	}
}
