package listview

import (
	"strings"
)

// CategoryAll is the synthesized "no filter" category. It is not a real
// backend category; it is prepended locally to every category list.
const CategoryAll = "Semua"

// Category is a minimal identifier + display name pair.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Matcher reports whether an item matches the given search text.
type Matcher[T any] func(item T, query string) bool

// Controller derives the visible page of a listing screen from an
// in-memory collection and the user's query state. All operations are
// synchronous and never touch the network; it is safe to call on every
// keystroke.
type Controller[T any] struct {
	items      []T
	categories []Category
	match      Matcher[T]
	categoryOf func(T) string

	searchText string
	category   string
	page       int
	pageSize   int
}

// New creates a controller without category filtering (forum-style
// screens search by title and keywords only).
func New[T any](pageSize int, match Matcher[T]) *Controller[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Controller[T]{
		match:    match,
		page:     1,
		pageSize: pageSize,
		category: CategoryAll,
	}
}

// NewCategorized creates a controller that additionally filters by the
// category identifier extracted from each item.
func NewCategorized[T any](pageSize int, match Matcher[T], categoryOf func(T) string) *Controller[T] {
	c := New(pageSize, match)
	c.categoryOf = categoryOf
	return c
}

// SetItems replaces the source collection and returns to the first
// page. Called once per screen mount when fetched data arrives.
func (c *Controller[T]) SetItems(items []T) {
	c.items = items
	c.page = 1
}

// SetCategories replaces the category collection used for name
// resolution. The "Semua" entry is synthesized, never fetched.
func (c *Controller[T]) SetCategories(categories []Category) {
	c.categories = categories
}

// Categories returns the selectable categories with "Semua" prepended.
func (c *Controller[T]) Categories() []Category {
	out := make([]Category, 0, len(c.categories)+1)
	out = append(out, Category{ID: CategoryAll, Name: CategoryAll})
	for _, cat := range c.categories {
		if cat.ID == CategoryAll {
			continue
		}
		out = append(out, cat)
	}
	return out
}

// SetSearchText replaces the search text and resets to page 1. The
// empty string matches everything.
func (c *Controller[T]) SetSearchText(text string) {
	c.searchText = text
	c.page = 1
}

// SetCategory resolves a display name (or identifier) against the
// category collection and selects it, resetting to page 1. Unknown
// names silently fall back to "Semua".
func (c *Controller[T]) SetCategory(nameOrID string) {
	c.category = c.resolveCategory(nameOrID)
	c.page = 1
}

func (c *Controller[T]) resolveCategory(nameOrID string) string {
	if nameOrID == CategoryAll {
		return CategoryAll
	}
	for _, cat := range c.categories {
		if cat.Name == nameOrID || cat.ID == nameOrID {
			return cat.ID
		}
	}
	return CategoryAll
}

// SetPage moves to page n if it is within [1, TotalPages]; otherwise
// the call is a no-op. Callers should disable out-of-range buttons,
// but state is never corrupted if they don't.
func (c *Controller[T]) SetPage(n int) {
	if n < 1 || n > c.TotalPages() {
		return
	}
	c.page = n
}

func (c *Controller[T]) SearchText() string { return c.searchText }

func (c *Controller[T]) SelectedCategory() string { return c.category }

func (c *Controller[T]) Page() int { return c.page }

func (c *Controller[T]) PageSize() int { return c.pageSize }

// Matches returns every item matching the current search text and
// category, in source order.
func (c *Controller[T]) Matches() []T {
	matched := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if c.match != nil && !c.match(item, c.searchText) {
			continue
		}
		if c.categoryOf != nil && c.category != CategoryAll && c.categoryOf(item) != c.category {
			continue
		}
		matched = append(matched, item)
	}
	return matched
}

// TotalItems returns the size of the current match set.
func (c *Controller[T]) TotalItems() int { return len(c.Matches()) }

// TotalPages is ceil(matches/pageSize), but never less than 1 so
// pagination controls always have a well-defined base state.
func (c *Controller[T]) TotalPages() int {
	pages := (len(c.Matches()) + c.pageSize - 1) / c.pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// VisiblePage returns the current page's slice of the match set.
func (c *Controller[T]) VisiblePage() []T {
	matched := c.Matches()
	start := (c.page - 1) * c.pageSize
	if start >= len(matched) {
		return nil
	}
	end := start + c.pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end]
}

func (c *Controller[T]) HasPrev() bool { return c.page > 1 }

func (c *Controller[T]) HasNext() bool { return c.page < c.TotalPages() }

// ContainsFold reports whether haystack contains needle after both are
// whitespace-trimmed and lowercased. Empty needles always match, and a
// missing field compared as "" still yields a defined result: items
// are never excluded because an optional field is absent.
func ContainsFold(haystack, needle string) bool {
	h := strings.ToLower(strings.TrimSpace(haystack))
	n := strings.ToLower(strings.TrimSpace(needle))
	return strings.Contains(h, n)
}

// TitleMatch is the default predicate: the title contains the search
// text, case-insensitively.
func TitleMatch(title, query string) bool {
	return ContainsFold(title, query)
}

// KeywordMatch extends TitleMatch with OR-matching against a keyword
// tag set, as forum screens do.
func KeywordMatch(title string, keywords []string, query string) bool {
	if ContainsFold(title, query) {
		return true
	}
	for _, kw := range keywords {
		if ContainsFold(kw, query) {
			return true
		}
	}
	return false
}
