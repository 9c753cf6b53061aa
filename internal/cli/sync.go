package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agrilearn/agrilearn/internal/logging"
	"github.com/agrilearn/agrilearn/internal/news"
	"github.com/agrilearn/agrilearn/internal/search"
)

func addSync(topLevel *cobra.Command) {
	var skipNews bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local cache from the platform API and news feeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			ctx := cmd.Context()

			articles, err := e.client.ListArticles(ctx)
			if err != nil {
				return fmt.Errorf("syncing articles: %w", err)
			}
			if err := e.store.ReplaceArticles(articles); err != nil {
				return err
			}
			if cats, err := e.client.ListArticleCategories(ctx); err == nil {
				_ = e.store.ReplaceArticleCategories(cats)
			} else {
				logging.Logger.Warn("article categories unavailable", zap.Error(err))
			}
			fmt.Printf("Articles: %d\n", len(articles))

			videos, err := e.client.ListVideos(ctx)
			if err != nil {
				return fmt.Errorf("syncing videos: %w", err)
			}
			if err := e.store.ReplaceVideos(videos); err != nil {
				return err
			}
			if cats, err := e.client.ListVideoCategories(ctx); err == nil {
				_ = e.store.ReplaceVideoCategories(cats)
			} else {
				logging.Logger.Warn("video categories unavailable", zap.Error(err))
			}
			fmt.Printf("Videos: %d\n", len(videos))

			threads, err := e.client.ListThreads(ctx)
			if err != nil {
				return fmt.Errorf("syncing forum: %w", err)
			}
			if err := e.store.ReplaceThreads(threads); err != nil {
				return err
			}
			fmt.Printf("Forum threads: %d\n", len(threads))

			if !skipNews {
				manager := news.NewManager(e.store, e.cfg)
				if err := manager.RefreshAll(ctx); err != nil {
					logging.Logger.Warn("news refresh incomplete", zap.Error(err))
					fmt.Printf("News: partial (%v)\n", err)
				} else {
					fmt.Println("News: refreshed")
				}
			}

			// Rebuild the persistent index so offline search sees the
			// fresh snapshot.
			if e.cfg.Cache.SearchIndex != "" {
				if engine, err := search.NewBleveEngine(e.store, e.cfg.Cache.SearchIndex); err == nil {
					if listener, ok := engine.(search.UpdateListener); ok {
						listener.OnCacheUpdated()
					}
					// Release the index lock so the TUI can open it next
					if closer, ok := engine.(io.Closer); ok {
						_ = closer.Close()
					}
				} else {
					logging.Logger.Warn("search index rebuild failed", zap.Error(err))
				}
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&skipNews, "no-news", false, "skip external news feeds")

	topLevel.AddCommand(cmd)
}
