package news

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/agrilearn/agrilearn/internal/config"
	"github.com/agrilearn/agrilearn/internal/logging"
	"github.com/agrilearn/agrilearn/internal/storage"
)

const maxConcurrentRefresh = 5

// Manager refreshes the configured agri-news sources into the cache.
type Manager struct {
	store   *storage.Store
	fetcher *Fetcher
	parser  *Parser
	config  *config.Config
	mu      sync.Mutex
	force   bool
}

func NewManager(store *storage.Store, cfg *config.Config) *Manager {
	return &Manager{
		store:   store,
		fetcher: NewFetcher(cfg),
		parser:  NewParser(),
		config:  cfg,
	}
}

// SetForceRefresh makes refreshes ignore both the refresh interval
// and the conditional-GET headers.
func (m *Manager) SetForceRefresh(force bool) {
	m.force = force
	m.fetcher.SetIgnoreCache(force)
}

// Sources returns the default feed list merged with any sources from
// the configuration.
func (m *Manager) Sources() ([]Source, error) {
	defaults, err := DefaultSources()
	if err != nil {
		return nil, err
	}
	return MergeSources(defaults, m.config.News.Sources), nil
}

// RefreshSource fetches one source and merges its items into the
// cache. Sources fetched within the refresh interval are skipped.
func (m *Manager) RefreshSource(ctx context.Context, source Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.store.GetFetchState(source.ID)
	if err != nil {
		state = &storage.FetchState{SourceID: source.ID}
	}

	if !m.force && time.Since(state.LastFetched) < m.config.News.RefreshInterval {
		return nil
	}

	resp, updated, err := m.fetcher.Fetch(ctx, source, state)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", source.Name, err)
	}

	if !updated || resp == nil {
		state.LastFetched = time.Now()
		if saveErr := m.store.SaveFetchState(state); saveErr != nil {
			return fmt.Errorf("saving fetch state: %w", saveErr)
		}
		return nil
	}

	defer resp.Body.Close()

	items, err := m.parser.Parse(resp.Body, source.ID)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", source.Name, err)
	}

	m.fetcher.UpdateFetchState(state, resp)

	if err := m.store.SaveNewsItems(items); err != nil {
		return fmt.Errorf("saving news items: %w", err)
	}
	if err := m.store.SaveFetchState(state); err != nil {
		return fmt.Errorf("saving fetch state: %w", err)
	}

	logging.Logger.Debug("refreshed news source",
		zap.String("source", source.Name),
		zap.Int("items", len(items)))
	return nil
}

// RefreshAll refreshes every source through a bounded worker pool.
func (m *Manager) RefreshAll(ctx context.Context) error {
	sources, err := m.Sources()
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return nil
	}

	sourceChan := make(chan Source, len(sources))
	errChan := make(chan error, len(sources))

	var wg sync.WaitGroup
	for i := 0; i < maxConcurrentRefresh && i < len(sources); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for source := range sourceChan {
				if refreshErr := m.RefreshSource(ctx, source); refreshErr != nil {
					errChan <- refreshErr
				}
			}
		}()
	}

	for _, source := range sources {
		sourceChan <- source
	}
	close(sourceChan)

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("refresh errors: %v", errs)
	}
	return nil
}
