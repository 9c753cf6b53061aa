package search

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/agrilearn/agrilearn/internal/storage"
)

// Engine provides weighted search over the cached collections without
// maintaining an index. Good enough for the data sizes a single user
// caches locally; the bleve engine exists for larger setups.
type Engine struct {
	store *storage.Store
}

func NewEngine(store *storage.Store) *Engine {
	return &Engine{store: store}
}

// Search scores articles, videos, and forum threads against the query
// and returns hits ordered by relevance.
func (e *Engine) Search(query string, limit int) ([]*Result, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []*Result{}, nil
	}

	terms := tokenize(query)
	if len(terms) == 0 {
		return []*Result{}, nil
	}

	var results []*Result

	articles, err := e.store.GetArticles()
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		if r := e.scoreArticle(a, terms); r != nil {
			results = append(results, r)
		}
	}

	videos, err := e.store.GetVideos()
	if err != nil {
		return nil, err
	}
	for _, v := range videos {
		if r := e.scoreVideo(v, terms); r != nil {
			results = append(results, r)
		}
	}

	threads, err := e.store.GetThreads()
	if err != nil {
		return nil, err
	}
	for _, t := range threads {
		if r := e.scoreThread(t, terms); r != nil {
			results = append(results, r)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

func (e *Engine) scoreArticle(a *storage.Article, terms []string) *Result {
	var matches []Match
	var total float64

	if s := scoreField(a.Title, terms, 4.0); s > 0 {
		matches = append(matches, Match{Field: "title", Text: a.Title, Weight: s})
		total += s
	}
	if s := scoreField(a.Description, terms, 2.0); s > 0 {
		matches = append(matches, Match{
			Field:  "description",
			Text:   findBestSnippet(a.Description, terms, 150),
			Weight: s,
		})
		total += s
	}

	if total == 0 {
		return nil
	}
	return &Result{
		Kind:    KindArticle,
		ID:      a.ID,
		Title:   a.Title,
		Snippet: bestMatchText(matches),
		Score:   total,
		Matches: matches,
	}
}

func (e *Engine) scoreVideo(v *storage.Video, terms []string) *Result {
	var matches []Match
	var total float64

	if s := scoreField(v.Title, terms, 4.0); s > 0 {
		matches = append(matches, Match{Field: "title", Text: v.Title, Weight: s})
		total += s
	}
	if s := scoreField(v.Description, terms, 2.0); s > 0 {
		matches = append(matches, Match{
			Field:  "description",
			Text:   findBestSnippet(v.Description, terms, 150),
			Weight: s,
		})
		total += s
	}

	if total == 0 {
		return nil
	}
	return &Result{
		Kind:    KindVideo,
		ID:      v.ID,
		Title:   v.Title,
		Snippet: bestMatchText(matches),
		Score:   total,
		Matches: matches,
	}
}

func (e *Engine) scoreThread(t *storage.Thread, terms []string) *Result {
	var matches []Match
	var total float64

	if s := scoreField(t.Title, terms, 4.0); s > 0 {
		matches = append(matches, Match{Field: "title", Text: t.Title, Weight: s})
		total += s
	}
	if s := scoreField(strings.Join(t.Keywords, " "), terms, 3.0); s > 0 {
		matches = append(matches, Match{
			Field:  "keywords",
			Text:   strings.Join(t.Keywords, ", "),
			Weight: s,
		})
		total += s
	}
	if s := scoreField(t.Content, terms, 1.0); s > 0 {
		matches = append(matches, Match{
			Field:  "content",
			Text:   findBestSnippet(t.Content, terms, 200),
			Weight: s,
		})
		total += s
	}

	if total == 0 {
		return nil
	}
	return &Result{
		Kind:    KindThread,
		ID:      t.ID,
		Title:   t.Title,
		Snippet: bestMatchText(matches),
		Score:   total,
		Matches: matches,
	}
}

func bestMatchText(matches []Match) string {
	best := ""
	weight := 0.0
	for _, m := range matches {
		if m.Field == "title" {
			continue
		}
		if m.Weight > weight {
			best = m.Text
			weight = m.Weight
		}
	}
	return best
}

// scoreField calculates relevance for one field: exact phrase hits
// score highest, then word-boundary and substring hits, with a mild
// TF-style adjustment so long fields don't dominate.
func scoreField(text string, terms []string, weight float64) float64 {
	if text == "" {
		return 0
	}

	lower := strings.ToLower(text)
	words := tokenize(text)
	if len(words) == 0 {
		return 0
	}

	var score float64
	matchedTerms := 0

	for _, term := range terms {
		termLower := strings.ToLower(term)

		if strings.Contains(lower, termLower) {
			score += 2.0
			matchedTerms++
		}

		for _, word := range words {
			switch {
			case word == termLower:
				score += 1.5
				matchedTerms++
			case strings.HasPrefix(word, termLower) || strings.HasSuffix(word, termLower):
				score += 1.0
				matchedTerms++
			case strings.Contains(word, termLower):
				score += 0.5
				matchedTerms++
			}
		}
	}

	if len(terms) > 1 && matchedTerms > 1 {
		score *= 1.0 + float64(matchedTerms)/float64(len(terms))
	}

	tf := float64(matchedTerms) / float64(len(words))
	score *= 1.0 + math.Log(1.0+tf)

	return score * weight
}

// findBestSnippet slides a window over the text and returns the
// stretch containing the most query terms.
func findBestSnippet(text string, terms []string, maxLength int) string {
	if text == "" {
		return ""
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	windowSize := maxLength / 8
	if windowSize < 1 || windowSize > len(words) {
		return truncate(text, maxLength)
	}

	bestScore := 0.0
	bestStart := 0
	for i := 0; i <= len(words)-windowSize; i++ {
		windowText := strings.ToLower(strings.Join(words[i:i+windowSize], " "))
		score := 0.0
		for _, term := range terms {
			if strings.Contains(windowText, strings.ToLower(term)) {
				score += 1.0
			}
		}
		if score > bestScore {
			bestScore = score
			bestStart = i
		}
	}

	return truncate(strings.Join(words[bestStart:bestStart+windowSize], " "), maxLength)
}

// tokenize breaks text into lowercase terms, skipping single chars.
func tokenize(text string) []string {
	var terms []string
	current := strings.Builder{}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else if current.Len() > 0 {
			if term := current.String(); len(term) > 1 {
				terms = append(terms, term)
			}
			current.Reset()
		}
	}

	if current.Len() > 1 {
		terms = append(terms, current.String())
	}

	return terms
}

func truncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-1] + "…"
}
