package storage

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestReplaceAndGetArticles(t *testing.T) {
	store := newTestStore(t)

	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.ReplaceArticles([]*Article{
		{ID: "1", Title: "Old", CreatedAt: older},
		{ID: "2", Title: "New", CreatedAt: newer},
	}))

	articles, err := store.GetArticles()
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "New", articles[0].Title, "newest first")

	// Replace is a full snapshot swap, not a merge
	require.NoError(t, store.ReplaceArticles([]*Article{
		{ID: "3", Title: "Only", CreatedAt: newer},
	}))
	articles, err = store.GetArticles()
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Only", articles[0].Title)
}

func TestGetArticleByID(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.ReplaceArticles([]*Article{{ID: "7", Title: "Padi"}}))

	a, err := store.GetArticle("7")
	require.NoError(t, err)
	assert.Equal(t, "Padi", a.Title)

	_, err = store.GetArticle("missing")
	assert.Error(t, err)
}

func TestThreadsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.ReplaceThreads([]*Thread{
		{ID: "t1", Title: "Hama wereng", Keywords: StringList{"hama", "padi"}},
	}))

	threads, err := store.GetThreads()
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, StringList{"hama", "padi"}, threads[0].Keywords)

	th, err := store.GetThread("t1")
	require.NoError(t, err)
	assert.Equal(t, "Hama wereng", th.Title)
}

func TestCategoriesSortedByName(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.ReplaceArticleCategories([]*Category{
		{ID: "2", Name: "Peternakan"},
		{ID: "1", Name: "Hidroponik"},
	}))

	cats, err := store.GetArticleCategories()
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Hidroponik", cats[0].Name)

	videoCats, err := store.GetVideoCategories()
	require.NoError(t, err)
	assert.Empty(t, videoCats, "video categories are a separate bucket")
}

func TestNewsMergeAndMarkRead(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveNewsItems([]*NewsItem{
		{ID: "n1", Title: "first", Published: time.Now().Add(-time.Hour)},
	}))
	require.NoError(t, store.SaveNewsItems([]*NewsItem{
		{ID: "n2", Title: "second", Published: time.Now()},
	}))

	items, err := store.GetNewsItems(0)
	require.NoError(t, err)
	require.Len(t, items, 2, "news accumulates across refreshes")
	assert.Equal(t, "second", items[0].Title)

	require.NoError(t, store.MarkNewsRead("n1", true))
	items, err = store.GetNewsItems(0)
	require.NoError(t, err)
	for _, it := range items {
		if it.ID == "n1" {
			assert.True(t, it.Read)
		}
	}

	assert.Error(t, store.MarkNewsRead("missing", true))
}

func TestNewsLimit(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveNewsItems([]*NewsItem{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}))

	items, err := store.GetNewsItems(2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSessionLifecycle(t *testing.T) {
	store := newTestStore(t)

	data, err := store.GetSession()
	require.NoError(t, err)
	assert.Nil(t, data, "no session when logged out")

	require.NoError(t, store.SaveSession([]byte(`{"token":"abc"}`)))
	data, err = store.GetSession()
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"abc"}`, string(data))

	require.NoError(t, store.DeleteSession())
	data, err = store.GetSession()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFetchStateRoundTrip(t *testing.T) {
	store := newTestStore(t)

	state := &FetchState{
		SourceID:     "src1",
		ETag:         `"abc"`,
		LastModified: "Mon, 02 Jan 2006 15:04:05 GMT",
		LastFetched:  time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.SaveFetchState(state))

	got, err := store.GetFetchState("src1")
	require.NoError(t, err)
	assert.Equal(t, state.ETag, got.ETag)
	assert.Equal(t, state.LastModified, got.LastModified)

	_, err = store.GetFetchState("unknown")
	assert.Error(t, err)
}

func TestArticleLegacyTitleNormalization(t *testing.T) {
	var a Article
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"judul":"Cara tanam","categoryArtikelId":3}`), &a))
	assert.Equal(t, "1", a.ID)
	assert.Equal(t, "Cara tanam", a.Title)
	assert.Equal(t, "3", a.CategoryID)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"2","title":"Canonical"}`), &a))
	assert.Equal(t, "Canonical", a.Title)

	// "title" wins when both are present
	require.NoError(t, json.Unmarshal([]byte(`{"id":"3","title":"A","judul":"B"}`), &a))
	assert.Equal(t, "A", a.Title)
}

func TestNumericIDDecoding(t *testing.T) {
	var videos []*Video
	require.NoError(t, json.Unmarshal([]byte(`[{"id":7,"title":"Mulsa plastik","categoryVideoId":2}]`), &videos))
	require.Len(t, videos, 1)
	assert.Equal(t, "7", videos[0].ID)
	assert.Equal(t, "2", videos[0].CategoryID)

	var th Thread
	require.NoError(t, json.Unmarshal([]byte(`{"id":12,"title":"Hama wereng","userId":4,"replies":[{"id":9,"forumId":12,"userId":4}]}`), &th))
	assert.Equal(t, "12", th.ID)
	assert.Equal(t, "4", th.UserID)
	require.Len(t, th.Replies, 1)
	assert.Equal(t, "9", th.Replies[0].ID)
	assert.Equal(t, "12", th.Replies[0].ThreadID)

	var cat Category
	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"name":"Irigasi"}`), &cat))
	assert.Equal(t, "5", cat.ID)

	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":31,"name":"Siti","role":"admin"}`), &u))
	assert.Equal(t, "31", u.ID)
	assert.True(t, u.IsAdmin())
}

func TestStringListDecoding(t *testing.T) {
	var th Thread

	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","keywords":["a","b"]}`), &th))
	assert.Equal(t, StringList{"a", "b"}, th.Keywords)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"2","keywords":"a, b ,"}`), &th))
	assert.Equal(t, StringList{"a", "b"}, th.Keywords)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"3","keywords":null}`), &th))
	assert.Nil(t, th.Keywords)
}
