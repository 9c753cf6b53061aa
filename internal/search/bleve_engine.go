package search

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/agrilearn/agrilearn/internal/storage"
)

type bleveEngine struct {
	store *storage.Store
	idx   bleve.Index
}

// NewBleveEngine creates or opens a Bleve index at indexPath and
// indexes the current cache contents.
func NewBleveEngine(store *storage.Store, indexPath string) (Searcher, error) {
	if mkErr := os.MkdirAll(filepath.Dir(indexPath), 0o755); mkErr != nil {
		// Open/Create below will surface the real error
		_ = mkErr
	}

	idx, err := bleve.Open(indexPath)
	if err != nil {
		idx, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, err
		}
	}

	be := &bleveEngine{store: store, idx: idx}
	if err := be.reindexAll(); err != nil {
		return nil, err
	}
	return be, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.Store = true
	title.IncludeTermVectors = true
	title.DocValues = true

	desc := bleve.NewTextFieldMapping()
	desc.Analyzer = standard.Name
	desc.Store = true
	desc.IncludeTermVectors = false

	content := bleve.NewTextFieldMapping()
	content.Analyzer = standard.Name
	content.Store = false
	content.IncludeTermVectors = false

	keywords := bleve.NewTextFieldMapping()
	keywords.Analyzer = standard.Name
	keywords.Store = true

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("description", desc)
	dm.AddFieldMappingsAt("content", content)
	dm.AddFieldMappingsAt("keywords", keywords)

	im.DefaultMapping = dm
	return im
}

// Close releases the on-disk index and its lock. Callers that open the
// engine for a one-shot rebuild must close it, or a later process
// cannot open the same index path.
func (b *bleveEngine) Close() error {
	return b.idx.Close()
}

func (b *bleveEngine) reindexAll() error {
	batch := b.idx.NewBatch()

	articles, err := b.store.GetArticles()
	if err != nil {
		return err
	}
	for _, a := range articles {
		_ = batch.Index(docIDForArticle(a.ID), map[string]any{
			"type":        "article",
			"title":       a.Title,
			"description": a.Description,
		})
	}

	videos, err := b.store.GetVideos()
	if err != nil {
		return err
	}
	for _, v := range videos {
		_ = batch.Index(docIDForVideo(v.ID), map[string]any{
			"type":        "video",
			"title":       v.Title,
			"description": v.Description,
		})
	}

	threads, err := b.store.GetThreads()
	if err != nil {
		return err
	}
	for _, t := range threads {
		_ = batch.Index(docIDForThread(t.ID), map[string]any{
			"type":     "thread",
			"title":    t.Title,
			"content":  t.Content,
			"keywords": strings.Join(t.Keywords, " "),
		})
	}

	return b.idx.Batch(batch)
}

func (b *bleveEngine) Search(query string, limit int) ([]*Result, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []*Result{}, nil
	}

	tokens := tokenize(query)
	var qs []bleveQuery.Query
	for _, tok := range tokens {
		// title^4
		qt := bleve.NewMatchQuery(tok)
		qt.SetField("title")
		qt.SetBoost(4.0)
		qs = append(qs, qt)
		qtp := bleve.NewPrefixQuery(strings.ToLower(tok))
		qtp.SetField("title")
		qtp.SetBoost(3.5)
		qs = append(qs, qtp)
		// keywords^3
		qk := bleve.NewMatchQuery(tok)
		qk.SetField("keywords")
		qk.SetBoost(3.0)
		qs = append(qs, qk)
		qkp := bleve.NewPrefixQuery(strings.ToLower(tok))
		qkp.SetField("keywords")
		qkp.SetBoost(2.5)
		qs = append(qs, qkp)
		// description^2
		qd := bleve.NewMatchQuery(tok)
		qd.SetField("description")
		qd.SetBoost(2.0)
		qs = append(qs, qd)
		qdp := bleve.NewPrefixQuery(strings.ToLower(tok))
		qdp.SetField("description")
		qdp.SetBoost(1.8)
		qs = append(qs, qdp)
		// content^1
		qc := bleve.NewMatchQuery(tok)
		qc.SetField("content")
		qc.SetBoost(1.0)
		qs = append(qs, qc)
		qcp := bleve.NewPrefixQuery(strings.ToLower(tok))
		qcp.SetField("content")
		qcp.SetBoost(0.8)
		qs = append(qs, qcp)
	}
	if len(qs) == 0 {
		return []*Result{}, nil
	}

	q := bleve.NewDisjunctionQuery(qs...)
	srch := bleve.NewSearchRequestOptions(q, limit, 0, false)
	srch.Fields = []string{"title", "description", "keywords"}
	res, err := b.idx.Search(srch)
	if err != nil {
		return nil, err
	}

	out := make([]*Result, 0, len(res.Hits))
	for _, h := range res.Hits {
		kind, id, ok := splitDocID(h.ID)
		if !ok {
			continue
		}
		r := &Result{Kind: kind, ID: id, Score: h.Score}
		if t, ok := h.Fields["title"].(string); ok {
			r.Title = t
		}
		if d, ok := h.Fields["description"].(string); ok {
			r.Snippet = truncate(d, 150)
		}
		if r.Snippet == "" {
			if k, ok := h.Fields["keywords"].(string); ok {
				r.Snippet = k
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// OnCacheUpdated rebuilds the index after a cache refresh. Refreshes
// replace whole collections, so stale docs are overwritten in place
// and removed entries are deleted explicitly.
func (b *bleveEngine) OnCacheUpdated() {
	live := make(map[string]bool)

	if articles, err := b.store.GetArticles(); err == nil {
		for _, a := range articles {
			live[docIDForArticle(a.ID)] = true
		}
	}
	if videos, err := b.store.GetVideos(); err == nil {
		for _, v := range videos {
			live[docIDForVideo(v.ID)] = true
		}
	}
	if threads, err := b.store.GetThreads(); err == nil {
		for _, t := range threads {
			live[docIDForThread(t.ID)] = true
		}
	}

	b.deleteStale(live)
	_ = b.reindexAll()
}

func (b *bleveEngine) deleteStale(live map[string]bool) {
	q := bleve.NewMatchAllQuery()
	from := 0
	size := 1000
	for {
		req := bleve.NewSearchRequestOptions(q, size, from, false)
		res, err := b.idx.Search(req)
		if err != nil || res == nil || len(res.Hits) == 0 {
			break
		}
		for _, h := range res.Hits {
			if !live[h.ID] {
				_ = b.idx.Delete(h.ID)
			}
		}
		if len(res.Hits) < size {
			break
		}
		from += size
	}
}

// DocCount reports total documents in the index.
func (b *bleveEngine) DocCount() (int, error) {
	q := bleve.NewMatchAllQuery()
	req := bleve.NewSearchRequestOptions(q, 0, 0, false)
	res, err := b.idx.Search(req)
	if err != nil {
		return 0, err
	}
	return int(res.Total), nil
}

func docIDForArticle(id string) string { return "article:" + id }
func docIDForVideo(id string) string   { return "video:" + id }
func docIDForThread(id string) string  { return "thread:" + id }

func splitDocID(docID string) (Kind, string, bool) {
	switch {
	case strings.HasPrefix(docID, "article:"):
		return KindArticle, strings.TrimPrefix(docID, "article:"), true
	case strings.HasPrefix(docID, "video:"):
		return KindVideo, strings.TrimPrefix(docID, "video:"), true
	case strings.HasPrefix(docID, "thread:"):
		return KindThread, strings.TrimPrefix(docID, "thread:"), true
	}
	return "", "", false
}
