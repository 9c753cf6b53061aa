package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/agrilearn/agrilearn/internal/config"
	"github.com/agrilearn/agrilearn/internal/storage"
)

type Fetcher struct {
	client      *http.Client
	userAgent   string
	ignoreCache bool
}

func NewFetcher(cfg *config.Config) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: cfg.News.HTTPTimeout},
		userAgent: cfg.API.UserAgent,
	}
}

// SetIgnoreCache disables the conditional-GET headers so the next
// fetch always returns a full body.
func (f *Fetcher) SetIgnoreCache(ignore bool) {
	f.ignoreCache = ignore
}

// Fetch requests a source feed. The second return is false when the
// server answered 304 Not Modified; the response is nil in that case.
func (f *Fetcher) Fetch(ctx context.Context, source Source, state *storage.FetchState) (*http.Response, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	if state != nil && !f.ignoreCache {
		if state.ETag != "" {
			req.Header.Set("If-None-Match", state.ETag)
		}
		if state.LastModified != "" {
			req.Header.Set("If-Modified-Since", state.LastModified)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("fetching source: %w", err)
	}

	if resp.StatusCode == http.StatusNotModified {
		resp.Body.Close()
		return nil, false, nil
	}

	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, false, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	return resp, true, nil
}

// UpdateFetchState records the caching headers from a full response.
func (f *Fetcher) UpdateFetchState(state *storage.FetchState, resp *http.Response) {
	if etag := resp.Header.Get("ETag"); etag != "" {
		state.ETag = etag
	}
	if lastMod := resp.Header.Get("Last-Modified"); lastMod != "" {
		state.LastModified = lastMod
	}
	state.LastFetched = time.Now()
}
