package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	articlesBucket    = []byte("articles")
	videosBucket      = []byte("videos")
	threadsBucket     = []byte("threads")
	articleCatsBucket = []byte("article_categories")
	videoCatsBucket   = []byte("video_categories")
	newsBucket        = []byte("news")
	sessionBucket     = []byte("session")
	metaBucket        = []byte("metadata")
)

var sessionKey = []byte("current")

// Store is the local cache for fetched collections plus the persisted
// session. Listing screens read from it when the API is unreachable.
type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		buckets := [][]byte{
			articlesBucket, videosBucket, threadsBucket,
			articleCatsBucket, videoCatsBucket,
			newsBucket, sessionBucket, metaBucket,
		}
		for _, bucket := range buckets {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// replaceAll swaps a bucket's contents for a fresh snapshot. Records
// are JSON keyed by id.
func (s *Store) replaceAll(bucket []byte, records map[string]any) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucket); err != nil {
			return err
		}
		b, err := tx.CreateBucket(bucket)
		if err != nil {
			return err
		}
		for id, rec := range records {
			data, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(id), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) ReplaceArticles(articles []*Article) error {
	records := make(map[string]any, len(articles))
	for _, a := range articles {
		records[a.ID] = a
	}
	return s.replaceAll(articlesBucket, records)
}

func (s *Store) GetArticles() ([]*Article, error) {
	var articles []*Article
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(articlesBucket).ForEach(func(_, v []byte) error {
			var a Article
			if err := json.Unmarshal(v, &a); err != nil {
				return nil
			}
			articles = append(articles, &a)
			return nil
		})
	})
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
	return articles, err
}

func (s *Store) GetArticle(id string) (*Article, error) {
	var a Article
	err := s.getJSON(articlesBucket, id, &a)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) ReplaceVideos(videos []*Video) error {
	records := make(map[string]any, len(videos))
	for _, v := range videos {
		records[v.ID] = v
	}
	return s.replaceAll(videosBucket, records)
}

func (s *Store) GetVideos() ([]*Video, error) {
	var videos []*Video
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(videosBucket).ForEach(func(_, v []byte) error {
			var vid Video
			if err := json.Unmarshal(v, &vid); err != nil {
				return nil
			}
			videos = append(videos, &vid)
			return nil
		})
	})
	sort.Slice(videos, func(i, j int) bool {
		return videos[i].CreatedAt.After(videos[j].CreatedAt)
	})
	return videos, err
}

func (s *Store) ReplaceThreads(threads []*Thread) error {
	records := make(map[string]any, len(threads))
	for _, t := range threads {
		records[t.ID] = t
	}
	return s.replaceAll(threadsBucket, records)
}

func (s *Store) GetThreads() ([]*Thread, error) {
	var threads []*Thread
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(threadsBucket).ForEach(func(_, v []byte) error {
			var t Thread
			if err := json.Unmarshal(v, &t); err != nil {
				return nil
			}
			threads = append(threads, &t)
			return nil
		})
	})
	sort.Slice(threads, func(i, j int) bool {
		return threads[i].CreatedAt.After(threads[j].CreatedAt)
	})
	return threads, err
}

func (s *Store) GetThread(id string) (*Thread, error) {
	var t Thread
	if err := s.getJSON(threadsBucket, id, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) ReplaceArticleCategories(cats []*Category) error {
	return s.replaceCategories(articleCatsBucket, cats)
}

func (s *Store) ReplaceVideoCategories(cats []*Category) error {
	return s.replaceCategories(videoCatsBucket, cats)
}

func (s *Store) replaceCategories(bucket []byte, cats []*Category) error {
	records := make(map[string]any, len(cats))
	for _, c := range cats {
		records[c.ID] = c
	}
	return s.replaceAll(bucket, records)
}

func (s *Store) GetArticleCategories() ([]*Category, error) {
	return s.getCategories(articleCatsBucket)
}

func (s *Store) GetVideoCategories() ([]*Category, error) {
	return s.getCategories(videoCatsBucket)
}

func (s *Store) getCategories(bucket []byte) ([]*Category, error) {
	var cats []*Category
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(_, v []byte) error {
			var c Category
			if err := json.Unmarshal(v, &c); err != nil {
				return nil
			}
			cats = append(cats, &c)
			return nil
		})
	})
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats, err
}

// SaveNewsItems merges items into the news bucket; unlike API
// collections, news accumulates across refreshes.
func (s *Store) SaveNewsItems(items []*NewsItem) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(newsBucket)
		for _, item := range items {
			data, err := json.Marshal(item)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(item.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) GetNewsItems(limit int) ([]*NewsItem, error) {
	var items []*NewsItem
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(newsBucket).ForEach(func(_, v []byte) error {
			var item NewsItem
			if err := json.Unmarshal(v, &item); err != nil {
				return nil
			}
			items = append(items, &item)
			return nil
		})
	})
	sort.Slice(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, err
}

func (s *Store) MarkNewsRead(id string, read bool) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(newsBucket)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("news item not found")
		}

		var item NewsItem
		if err := json.Unmarshal(data, &item); err != nil {
			return err
		}

		item.Read = read

		data, err := json.Marshal(item)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), data)
	})
}

// SaveSession persists the raw session record; the session package
// owns its shape.
func (s *Store) SaveSession(data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put(sessionKey, data)
	})
}

// GetSession returns the persisted session record, or nil when logged
// out.
func (s *Store) GetSession() ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(sessionBucket).Get(sessionKey); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	return data, err
}

func (s *Store) DeleteSession() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete(sessionKey)
	})
}

func (s *Store) SaveFetchState(state *FetchState) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(state)
		if err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Put([]byte(state.SourceID), data)
	})
}

func (s *Store) GetFetchState(sourceID string) (*FetchState, error) {
	var state FetchState
	if err := s.getJSON(metaBucket, sourceID, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Store) getJSON(bucket []byte, id string, out any) error {
	return s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucket).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("record not found")
		}
		return json.Unmarshal(data, out)
	})
}
