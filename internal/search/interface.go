package search

// Kind identifies which collection a search hit came from.
type Kind string

const (
	KindArticle Kind = "article"
	KindVideo   Kind = "video"
	KindThread  Kind = "thread"
)

// Result is one scored hit across the cached collections.
type Result struct {
	Kind    Kind
	ID      string
	Title   string
	Snippet string
	Score   float64
	Matches []Match
}

// Match records where the query text was found.
type Match struct {
	Field  string // "title", "description", "content", "keywords"
	Text   string
	Weight float64
}

// Searcher is the minimal search API used by the TUI and CLI.
type Searcher interface {
	Search(query string, limit int) ([]*Result, error)
}

// UpdateListener is implemented by engines that maintain an external
// index and need to know when the cache changes.
type UpdateListener interface {
	OnCacheUpdated()
}

// DebugStatser reports index document counts for diagnostics.
type DebugStatser interface {
	DocCount() (int, error)
}
