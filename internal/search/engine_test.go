package search

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilearn/agrilearn/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedStore(t *testing.T, store *storage.Store) {
	t.Helper()
	require.NoError(t, store.ReplaceArticles([]*storage.Article{
		{
			ID:          "a1",
			Title:       "Drip irrigation basics",
			Description: "Saving water with low pressure drip lines",
		},
		{
			ID:          "a2",
			Title:       "Composting guide",
			Description: "Turning farm waste into fertilizer",
		},
	}))
	require.NoError(t, store.ReplaceVideos([]*storage.Video{
		{
			ID:          "v1",
			Title:       "Pruning tomato plants",
			Description: "Step by step pruning for better yield",
		},
	}))
	require.NoError(t, store.ReplaceThreads([]*storage.Thread{
		{
			ID:       "t1",
			Title:    "Pest problems on chili plants",
			Content:  "The leaves are curling and I suspect aphids",
			Keywords: []string{"hama", "cabai"},
		},
	}))
}

func TestNewEngine(t *testing.T) {
	store := &storage.Store{}
	engine := NewEngine(store)
	assert.NotNil(t, engine)
	assert.Equal(t, store, engine.store)
}

func TestSearchMinLength(t *testing.T) {
	engine := NewEngine(newTestStore(t))

	tests := []struct {
		name  string
		query string
	}{
		{
			name:  "Empty query",
			query: "",
		},
		{
			name:  "Single character query",
			query: "a",
		},
		{
			name:  "Whitespace only",
			query: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := engine.Search(tt.query, 10)
			assert.NoError(t, err)
			assert.NotNil(t, results)
			assert.Equal(t, 0, len(results), "short queries should return empty results")
		})
	}
}

func TestSearchAcrossCollections(t *testing.T) {
	store := newTestStore(t)
	seedStore(t, store)
	engine := NewEngine(store)

	tests := []struct {
		name     string
		query    string
		wantKind Kind
		wantID   string
	}{
		{
			name:     "article by title",
			query:    "irrigation",
			wantKind: KindArticle,
			wantID:   "a1",
		},
		{
			name:     "article by description",
			query:    "fertilizer",
			wantKind: KindArticle,
			wantID:   "a2",
		},
		{
			name:     "video by title",
			query:    "pruning tomato",
			wantKind: KindVideo,
			wantID:   "v1",
		},
		{
			name:     "thread by keyword",
			query:    "cabai",
			wantKind: KindThread,
			wantID:   "t1",
		},
		{
			name:     "thread by content",
			query:    "aphids",
			wantKind: KindThread,
			wantID:   "t1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := engine.Search(tt.query, 10)
			require.NoError(t, err)
			require.NotEmpty(t, results)
			assert.Equal(t, tt.wantKind, results[0].Kind)
			assert.Equal(t, tt.wantID, results[0].ID)
			assert.Greater(t, results[0].Score, 0.0)
			assert.NotEmpty(t, results[0].Matches)
		})
	}
}

func TestSearchNoMatch(t *testing.T) {
	store := newTestStore(t)
	seedStore(t, store)
	engine := NewEngine(store)

	results, err := engine.Search("blockchain", 10)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(results))
}

func TestSearchTitleOutranksContent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.ReplaceArticles([]*storage.Article{
		{ID: "title-hit", Title: "Mulching techniques", Description: "General soil care"},
		{ID: "desc-hit", Title: "Soil care", Description: "A short note on mulching"},
	}))
	engine := NewEngine(store)

	results, err := engine.Search("mulching", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "title-hit", results[0].ID)
}

func TestSearchLimit(t *testing.T) {
	store := newTestStore(t)
	seedStore(t, store)
	engine := NewEngine(store)

	results, err := engine.Search("plants", 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 1)
}

func TestResultStructure(t *testing.T) {
	result := &Result{
		Kind:    KindArticle,
		ID:      "a1",
		Title:   "Title",
		Snippet: "snippet",
		Score:   0.95,
		Matches: []Match{},
	}

	assert.Equal(t, KindArticle, result.Kind)
	assert.Equal(t, "a1", result.ID)
	assert.Equal(t, 0.95, result.Score)
	assert.NotNil(t, result.Matches)
}

func TestMatchStructure(t *testing.T) {
	match := Match{
		Field:  "title",
		Text:   "matched text",
		Weight: 1.0,
	}

	assert.Equal(t, "title", match.Field)
	assert.Equal(t, "matched text", match.Text)
	assert.Equal(t, 1.0, match.Weight)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple words",
			input:    "hello world",
			expected: []string{"hello", "world"},
		},
		{
			name:     "with punctuation",
			input:    "hello, world! test.",
			expected: []string{"hello", "world", "test"},
		},
		{
			name:     "with numbers",
			input:    "test123 456hello",
			expected: []string{"test123", "456hello"},
		},
		{
			name:     "mixed case",
			input:    "Hello WORLD Test",
			expected: []string{"hello", "world", "test"},
		},
		{
			name:     "single characters filtered",
			input:    "a b test c d word",
			expected: []string{"test", "word"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "special characters",
			input:    "test@email.com hello-world",
			expected: []string{"test", "email", "com", "hello", "world"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tokenize(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxLen   int
		expected string
	}{
		{
			name:     "text shorter than limit",
			text:     "short",
			maxLen:   10,
			expected: "short",
		},
		{
			name:     "text exactly at limit",
			text:     "exactlyten",
			maxLen:   10,
			expected: "exactlyten",
		},
		{
			name:     "text longer than limit",
			text:     "this is a very long text",
			maxLen:   10,
			expected: "this is a…",
		},
		{
			name:     "empty text",
			text:     "",
			maxLen:   10,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncate(tt.text, tt.maxLen)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestScoreField(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		terms    []string
		weight   float64
		minScore float64
	}{
		{
			name:     "exact match",
			text:     "hello world",
			terms:    []string{"hello"},
			weight:   1.0,
			minScore: 2.0,
		},
		{
			name:     "partial match",
			text:     "hello world",
			terms:    []string{"hel"},
			weight:   1.0,
			minScore: 1.0,
		},
		{
			name:     "no match",
			text:     "hello world",
			terms:    []string{"xyz"},
			weight:   1.0,
			minScore: 0,
		},
		{
			name:     "empty text",
			text:     "",
			terms:    []string{"hello"},
			weight:   1.0,
			minScore: 0,
		},
		{
			name:     "multiple terms",
			text:     "hello world test",
			terms:    []string{"hello", "test"},
			weight:   1.0,
			minScore: 4.0,
		},
		{
			name:     "case insensitive",
			text:     "HELLO WORLD",
			terms:    []string{"hello"},
			weight:   1.0,
			minScore: 2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := scoreField(tt.text, tt.terms, tt.weight)
			assert.GreaterOrEqual(t, score, tt.minScore)
		})
	}
}

func TestFindBestSnippet(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		terms     []string
		maxLength int
		contains  string
	}{
		{
			name:      "find term in text",
			text:      "This is a long text with the word hello in the middle and more text after",
			terms:     []string{"hello"},
			maxLength: 50,
			contains:  "hello",
		},
		{
			name:      "empty text",
			text:      "",
			terms:     []string{"hello"},
			maxLength: 50,
			contains:  "",
		},
		{
			name:      "text shorter than max",
			text:      "short text",
			terms:     []string{"short"},
			maxLength: 100,
			contains:  "short text",
		},
		{
			name:      "multiple terms",
			text:      "The quick brown fox jumps over the lazy dog",
			terms:     []string{"quick", "dog"},
			maxLength: 50,
			contains:  "quick",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snippet := findBestSnippet(tt.text, tt.terms, tt.maxLength)
			if tt.contains != "" {
				assert.Contains(t, snippet, tt.contains)
			} else {
				assert.Equal(t, "", snippet)
			}
			assert.LessOrEqual(t, len(snippet), tt.maxLength)
		})
	}
}
