package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/agrilearn/agrilearn/internal/logging"
	"github.com/agrilearn/agrilearn/internal/render"
	"github.com/agrilearn/agrilearn/internal/storage"
)

func (a *App) apiContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.config.API.Timeout)
}

// loadArticles fetches from the API and falls back to the cache when
// the network is unavailable.
func (a *App) loadArticles() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.apiContext()
		defer cancel()

		articles, err := a.client.ListArticles(ctx)
		if err != nil {
			logging.Logger.Warn("article fetch failed, using cache", zap.Error(err))
			cached, cacheErr := a.store.GetArticles()
			if cacheErr != nil {
				return errorMsg{err: wrapErr("loading articles", err)}
			}
			cats, _ := a.store.GetArticleCategories()
			return articlesLoadedMsg{articles: cached, categories: cats, fromCache: true}
		}

		categories, err := a.client.ListArticleCategories(ctx)
		if err != nil {
			categories, _ = a.store.GetArticleCategories()
		}

		_ = a.store.ReplaceArticles(articles)
		_ = a.store.ReplaceArticleCategories(categories)
		a.notifyCacheUpdated()

		return articlesLoadedMsg{articles: articles, categories: categories}
	}
}

func (a *App) loadVideos() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.apiContext()
		defer cancel()

		videos, err := a.client.ListVideos(ctx)
		if err != nil {
			logging.Logger.Warn("video fetch failed, using cache", zap.Error(err))
			cached, cacheErr := a.store.GetVideos()
			if cacheErr != nil {
				return errorMsg{err: wrapErr("loading videos", err)}
			}
			cats, _ := a.store.GetVideoCategories()
			return videosLoadedMsg{videos: cached, categories: cats, fromCache: true}
		}

		categories, err := a.client.ListVideoCategories(ctx)
		if err != nil {
			categories, _ = a.store.GetVideoCategories()
		}

		_ = a.store.ReplaceVideos(videos)
		_ = a.store.ReplaceVideoCategories(categories)
		a.notifyCacheUpdated()

		return videosLoadedMsg{videos: videos, categories: categories}
	}
}

func (a *App) loadThreads() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.apiContext()
		defer cancel()

		threads, err := a.client.ListThreads(ctx)
		if err != nil {
			logging.Logger.Warn("forum fetch failed, using cache", zap.Error(err))
			cached, cacheErr := a.store.GetThreads()
			if cacheErr != nil {
				return errorMsg{err: wrapErr("loading forum", err)}
			}
			return threadsLoadedMsg{threads: cached, fromCache: true}
		}

		_ = a.store.ReplaceThreads(threads)
		a.notifyCacheUpdated()

		return threadsLoadedMsg{threads: threads}
	}
}

func (a *App) loadThread(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.apiContext()
		defer cancel()

		thread, err := a.client.GetThread(ctx, id)
		if err != nil {
			cached, cacheErr := a.store.GetThread(id)
			if cacheErr != nil {
				return errorMsg{err: wrapErr("loading thread", err)}
			}
			return threadLoadedMsg{thread: cached}
		}
		return threadLoadedMsg{thread: thread}
	}
}

func (a *App) loadNews() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.config.News.HTTPTimeout*2)
		defer cancel()

		// A failed refresh still shows whatever is cached.
		if err := a.newsManager.RefreshAll(ctx); err != nil {
			logging.Logger.Warn("news refresh failed", zap.Error(err))
		}

		items, err := a.store.GetNewsItems(a.config.UI.PageSizes.News * 5)
		if err != nil {
			return errorMsg{err: wrapErr("loading news", err)}
		}
		return newsLoadedMsg{items: items}
	}
}

func (a *App) loadForecasts(areaCode, areaName string) tea.Cmd {
	return func() tea.Msg {
		if a.weatherClient == nil {
			return errorMsg{err: fmt.Errorf("weather service unavailable")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), a.config.Weather.Timeout)
		defer cancel()

		forecasts, err := a.weatherClient.Forecasts(ctx, areaCode)
		if err != nil {
			return errorMsg{err: wrapErr("fetching forecast", err)}
		}
		return weatherLoadedMsg{forecasts: forecasts, area: areaName}
	}
}

// renderArticle converts the sanitized body to markdown and renders
// it for the reader viewport.
func (a *App) renderArticle(article *storage.Article) tea.Cmd {
	return func() tea.Msg {
		var content strings.Builder
		content.WriteString(fmt.Sprintf("# %s\n\n", article.Title))
		if !article.CreatedAt.IsZero() {
			content.WriteString(fmt.Sprintf("*%s*\n\n", article.CreatedAt.Format("January 2, 2006")))
		}
		content.WriteString("---\n\n")
		content.WriteString(render.Body(article.Description))

		return a.renderMarkdown(content.String())
	}
}

func (a *App) renderThread(thread *storage.Thread) tea.Cmd {
	return func() tea.Msg {
		var content strings.Builder
		content.WriteString(fmt.Sprintf("# %s\n\n", thread.Title))
		if len(thread.Keywords) > 0 {
			content.WriteString(fmt.Sprintf("*%s*\n\n", strings.Join(thread.Keywords, ", ")))
		}
		content.WriteString(render.Body(thread.Content))
		content.WriteString("\n\n---\n\n")

		if len(thread.Replies) == 0 {
			content.WriteString("*No replies yet.*\n")
		} else {
			content.WriteString(fmt.Sprintf("## Replies (%d)\n\n", len(thread.Replies)))
			for _, reply := range thread.Replies {
				when := ""
				if !reply.CreatedAt.IsZero() {
					when = " · " + reply.CreatedAt.Format("Jan 2, 15:04")
				}
				content.WriteString(fmt.Sprintf("**›**%s\n\n%s\n\n", when, render.Body(reply.Content)))
			}
		}

		return a.renderMarkdown(content.String())
	}
}

func (a *App) renderForecasts() tea.Cmd {
	return func() tea.Msg {
		var content strings.Builder
		content.WriteString(fmt.Sprintf("# Forecast · %s\n\n", a.forecastArea))

		for _, f := range a.forecasts {
			when := "?"
			if !f.Time.IsZero() {
				when = f.Time.Format("Mon Jan 2, 15:04")
			}
			content.WriteString(fmt.Sprintf("## %s\n\n", when))
			content.WriteString(fmt.Sprintf("- %s\n", f.Description))
			content.WriteString(fmt.Sprintf("- Temperature: %.0f°C\n", f.Temperature))
			content.WriteString(fmt.Sprintf("- Humidity: %.0f%%\n", f.Humidity))
			content.WriteString(fmt.Sprintf("- Wind: %.0f km/h\n\n", f.WindSpeed))
		}

		return a.renderMarkdown(content.String())
	}
}

func (a *App) renderNewsItem(item *storage.NewsItem) tea.Cmd {
	return func() tea.Msg {
		var content strings.Builder
		content.WriteString(fmt.Sprintf("# %s\n\n", item.Title))
		if !item.Published.IsZero() {
			content.WriteString(fmt.Sprintf("*%s*\n\n", item.Published.Format("January 2, 2006")))
		}
		if item.URL != "" {
			content.WriteString(fmt.Sprintf("[Read Online](%s)\n\n", item.URL))
		}
		content.WriteString("---\n\n")
		content.WriteString(render.Body(item.Description))

		_ = a.store.MarkNewsRead(item.ID, true)

		return a.renderMarkdown(content.String())
	}
}

func (a *App) renderMarkdown(markdown string) tea.Msg {
	r, err := a.getRenderer()
	if err != nil {
		return contentRenderedMsg{content: "Error initializing renderer: " + err.Error()}
	}

	rendered, err := r.Render(markdown)
	if err != nil {
		return contentRenderedMsg{content: fmt.Sprintf("# Error\n\nFailed to render content: %s\n\nPress Escape to go back.", err.Error())}
	}

	return contentRenderedMsg{content: rendered}
}

func (a *App) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := a.searchEngine.Search(query, 20)
		if err != nil {
			return errorMsg{err: wrapErr("search", err)}
		}
		return searchResultsMsg{results: results}
	}
}

func (a *App) submitLogin(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.apiContext()
		defer cancel()

		resp, err := a.client.Login(ctx, email, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		if err := a.session.Login(resp.Token, resp.User); err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{}
	}
}

func (a *App) submitLogout() tea.Cmd {
	return func() tea.Msg {
		if err := a.session.Logout(); err != nil {
			return errorMsg{err: wrapErr("logout", err)}
		}
		return loginResultMsg{}
	}
}

func (a *App) submitReply(threadID, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.apiContext()
		defer cancel()

		if _, err := a.client.ReplyToThread(ctx, threadID, content); err != nil {
			return replyPostedMsg{threadID: threadID, err: err}
		}
		return replyPostedMsg{threadID: threadID}
	}
}

func (a *App) openVideo(video *storage.Video) tea.Cmd {
	return func() tea.Msg {
		if video.URL == "" {
			return videoOpenedMsg{err: fmt.Errorf("video has no URL")}
		}
		if err := a.launcher.Open(video.URL); err != nil {
			return videoOpenedMsg{err: err}
		}
		return videoOpenedMsg{}
	}
}

// notifyCacheUpdated tells an index-backed search engine to pick up
// the new cache contents.
func (a *App) notifyCacheUpdated() {
	if listener, ok := a.searchEngine.(interface{ OnCacheUpdated() }); ok {
		listener.OnCacheUpdated()
	}
}
