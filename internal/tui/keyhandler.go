package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agrilearn/agrilearn/internal/config"
	"github.com/agrilearn/agrilearn/internal/listview"
	"github.com/agrilearn/agrilearn/internal/search"
	"github.com/agrilearn/agrilearn/internal/storage"
	"github.com/agrilearn/agrilearn/internal/weather"
)

type KeyHandler struct {
	app         *App
	config      *config.Config
	modifierKey string
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	modifierKey := cfg.Keys.Modifier + "+"
	return &KeyHandler{app: app, config: cfg, modifierKey: modifierKey}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(key); handled {
		return model, cmd
	}

	return kh.delegateToCharm(msg)
}

func (kh *KeyHandler) isInTextInputMode() bool {
	switch kh.app.view {
	case ViewLogin, ViewReply:
		return kh.app.textInput.Focused()
	case ViewSearch:
		return kh.app.searchInput.Focused()
	case ViewArticles, ViewVideos, ViewForum:
		return kh.app.filterInput.Focused()
	case ViewWeather:
		return len(kh.app.forecasts) == 0 && kh.app.areaList.FilterState() == list.Filtering
	default:
		return false
	}
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if kh.app.view == ViewWeather {
		// The area list owns filtering keys, including esc and enter.
		return kh.delegateToCharm(msg)
	}

	switch key {
	case "esc":
		return kh.navigateBack()
	case "ctrl+c":
		return kh.app, tea.Quit
	case "enter":
		return kh.handleTextInputEnter()
	case "tab", "down":
		if kh.app.view == ViewSearch {
			if len(kh.app.searchList.Items()) > 0 {
				kh.app.searchInput.Blur()
				kh.app.searchList.Select(0)
			}
			return kh.app, nil
		}
		if kh.app.filterInput.Focused() {
			kh.app.filterInput.Blur()
			return kh.app, nil
		}
		return kh.delegateToTextInput(msg)
	default:
		return kh.delegateToTextInput(msg)
	}
}

func (kh *KeyHandler) handleTextInputEnter() (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewLogin:
		input := strings.TrimSpace(kh.app.textInput.Value())
		if input == "" {
			return kh.app, nil
		}
		if kh.app.loginStep == 0 {
			kh.app.loginEmail = input
			kh.app.loginStep = 1
			kh.app.textInput.Reset()
			kh.app.textInput.Placeholder = "Password"
			kh.app.textInput.EchoMode = textinput.EchoPassword
			return kh.app, nil
		}
		kh.app.setStatus(MsgLoggingIn, StatusInfo)
		kh.app.loading = true
		return kh.app, kh.app.submitLogin(kh.app.loginEmail, input)

	case ViewReply:
		input := strings.TrimSpace(kh.app.textInput.Value())
		if input == "" || kh.app.currentThread == nil {
			return kh.app, nil
		}
		kh.app.setStatus(MsgPosting, StatusInfo)
		kh.app.loading = true
		return kh.app, kh.app.submitReply(kh.app.currentThread.ID, input)

	case ViewSearch:
		query := strings.TrimSpace(kh.app.searchInput.Value())
		if query == "" {
			return kh.app, nil
		}
		return kh.app, kh.app.performSearch(query)

	case ViewArticles, ViewVideos, ViewForum:
		kh.app.filterInput.Blur()
		return kh.app, nil

	default:
		return kh.app, nil
	}
}

func (kh *KeyHandler) delegateToTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewLogin, ViewReply:
		newTextInput, cmd := kh.app.textInput.Update(msg)
		kh.app.textInput = newTextInput
		return kh.app, cmd

	case ViewSearch:
		newSearchInput, cmd := kh.app.searchInput.Update(msg)
		kh.app.searchInput = newSearchInput
		return kh.app, cmd

	case ViewArticles, ViewVideos, ViewForum:
		newFilterInput, cmd := kh.app.filterInput.Update(msg)
		kh.app.filterInput = newFilterInput
		kh.app.applyFilter()
		return kh.app, cmd

	default:
		return kh.app, nil
	}
}

func (kh *KeyHandler) handleCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "ctrl+c":
		return kh.app, tea.Quit, true
	case "esc":
		model, cmd := kh.navigateBack()
		return model, cmd, true
	case kh.modifierKey + kh.config.Keys.Bindings.Search:
		model, cmd := kh.enterSearchMode()
		return model, cmd, true
	}

	switch kh.app.view {
	case ViewHome:
		return kh.handleHomeKeys(key)
	case ViewArticles, ViewVideos, ViewForum:
		return kh.handleListingKeys(key)
	case ViewNews:
		return kh.handleNewsKeys(key)
	case ViewThread:
		return kh.handleThreadKeys(key)
	case ViewWeather:
		return kh.handleWeatherKeys(key)
	case ViewSearch:
		return kh.handleSearchKeys(key)
	default:
		if key == kh.config.Keys.Bindings.Quit {
			return kh.app, tea.Quit, true
		}
		return kh.app, nil, false
	}
}

func (kh *KeyHandler) handleHomeKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case kh.config.Keys.Bindings.Quit:
		return kh.app, tea.Quit, true
	case "enter":
		if item, ok := kh.app.homeList.SelectedItem().(sectionItem); ok {
			model, cmd := kh.openSection(item)
			return model, cmd, true
		}
		return kh.app, nil, true
	default:
		return kh.app, nil, false
	}
}

func (kh *KeyHandler) openSection(item sectionItem) (tea.Model, tea.Cmd) {
	kh.app.previousView = ViewHome
	kh.app.clearStatus()

	switch item.view {
	case ViewArticles, ViewVideos, ViewForum:
		kh.app.view = item.view
		kh.app.filterInput.Reset()
		kh.app.filterInput.Blur()
		kh.app.loading = true
		switch item.view {
		case ViewArticles:
			return kh.app, kh.app.loadArticles()
		case ViewVideos:
			return kh.app, kh.app.loadVideos()
		default:
			return kh.app, kh.app.loadThreads()
		}

	case ViewNews:
		kh.app.view = ViewNews
		kh.app.loading = true
		return kh.app, kh.app.loadNews()

	case ViewWeather:
		kh.app.view = ViewWeather
		kh.app.forecasts = nil
		kh.populateAreaList()
		return kh.app, nil

	case ViewSearch:
		return kh.enterSearchMode()

	case ViewLogin:
		if kh.app.session.IsLoggedIn() {
			return kh.app, kh.app.submitLogout()
		}
		kh.app.view = ViewLogin
		kh.app.loginStep = 0
		kh.app.textInput.Reset()
		kh.app.textInput.Placeholder = "Email"
		kh.app.textInput.EchoMode = textinput.EchoNormal
		kh.app.textInput.Focus()
		return kh.app, nil
	}

	return kh.app, nil
}

func (kh *KeyHandler) populateAreaList() {
	provinces, err := weather.LoadProvinces()
	if err != nil {
		kh.app.err = wrapErr("loading forecast areas", err)
		return
	}
	var items []list.Item
	for _, prov := range provinces {
		for _, area := range prov.Areas {
			items = append(items, areaItem{area: area, province: prov.Name})
		}
	}
	kh.app.areaList.SetItems(items)
	kh.app.areaList.ResetFilter()
	kh.app.areaList.Select(0)
}

func (kh *KeyHandler) handleListingKeys(key string) (tea.Model, tea.Cmd, bool) {
	bindings := kh.config.Keys.Bindings

	switch key {
	case bindings.Quit:
		return kh.app, tea.Quit, true

	case "/":
		kh.app.filterInput.Focus()
		return kh.app, nil, true

	case bindings.NextPage:
		kh.activeController().nextPage()
		kh.app.syncContentList()
		return kh.app, nil, true

	case bindings.PrevPage:
		kh.activeController().prevPage()
		kh.app.syncContentList()
		return kh.app, nil, true

	case bindings.Category:
		kh.cycleCategory()
		kh.app.syncContentList()
		return kh.app, nil, true

	case bindings.Refresh:
		kh.app.setStatus(MsgRefreshing, StatusInfo)
		kh.app.loading = true
		switch kh.app.view {
		case ViewArticles:
			return kh.app, kh.app.loadArticles(), true
		case ViewVideos:
			return kh.app, kh.app.loadVideos(), true
		default:
			return kh.app, kh.app.loadThreads(), true
		}

	case bindings.OpenMedia:
		if kh.app.view == ViewVideos {
			if item, ok := kh.app.contentList.SelectedItem().(videoItem); ok {
				return kh.app, kh.app.openVideo(item.video), true
			}
		}
		return kh.app, nil, false

	case "enter":
		model, cmd := kh.openSelectedListItem()
		return model, cmd, true

	default:
		return kh.app, nil, false
	}
}

func (kh *KeyHandler) openSelectedListItem() (tea.Model, tea.Cmd) {
	switch item := kh.app.contentList.SelectedItem().(type) {
	case articleItem:
		kh.app.previousView = kh.app.view
		kh.app.view = ViewReader
		kh.app.currentArticle = item.article
		kh.app.loading = true
		return kh.app, kh.app.renderArticle(item.article)

	case videoItem:
		kh.app.currentVideo = item.video
		return kh.app, kh.app.openVideo(item.video)

	case threadItem:
		kh.app.previousView = kh.app.view
		kh.app.view = ViewThread
		kh.app.loading = true
		return kh.app, kh.app.loadThread(item.thread.ID)

	case newsListItem:
		kh.app.previousView = kh.app.view
		kh.app.view = ViewReader
		kh.app.loading = true
		return kh.app, kh.app.renderNewsItem(item.item)
	}

	return kh.app, nil
}

func (kh *KeyHandler) handleNewsKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case kh.config.Keys.Bindings.Quit:
		return kh.app, tea.Quit, true
	case kh.config.Keys.Bindings.Refresh:
		kh.app.setStatus(MsgRefreshing, StatusInfo)
		kh.app.loading = true
		kh.app.newsManager.SetForceRefresh(true)
		return kh.app, kh.app.loadNews(), true
	case "enter":
		model, cmd := kh.openSelectedListItem()
		return model, cmd, true
	default:
		return kh.app, nil, false
	}
}

func (kh *KeyHandler) handleThreadKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case kh.config.Keys.Bindings.Quit:
		return kh.app, tea.Quit, true
	case kh.modifierKey + "p":
		if !kh.app.session.IsLoggedIn() {
			kh.app.setStatus("Log in to reply", StatusWarn)
			return kh.app, nil, true
		}
		kh.app.previousView = ViewThread
		kh.app.view = ViewReply
		kh.app.textInput.Reset()
		kh.app.textInput.Placeholder = "Write a reply..."
		kh.app.textInput.EchoMode = textinput.EchoNormal
		kh.app.textInput.Focus()
		return kh.app, nil, true
	default:
		return kh.app, nil, false
	}
}

func (kh *KeyHandler) handleWeatherKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case kh.config.Keys.Bindings.Quit:
		return kh.app, tea.Quit, true
	case "enter":
		if len(kh.app.forecasts) > 0 {
			return kh.app, nil, true
		}
		if item, ok := kh.app.areaList.SelectedItem().(areaItem); ok {
			kh.app.loading = true
			return kh.app, kh.app.loadForecasts(item.area.Code, item.area.Name), true
		}
		return kh.app, nil, true
	default:
		return kh.app, nil, false
	}
}

func (kh *KeyHandler) handleSearchKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "tab", "up":
		kh.app.searchInput.Focus()
		return kh.app, nil, true
	case "enter":
		if item, ok := kh.app.searchList.SelectedItem().(searchResultItem); ok {
			model, cmd := kh.openSearchResult(item)
			return model, cmd, true
		}
		return kh.app, nil, true
	default:
		return kh.app, nil, false
	}
}

func (kh *KeyHandler) openSearchResult(item searchResultItem) (tea.Model, tea.Cmd) {
	switch item.result.Kind {
	case search.KindArticle:
		article, err := kh.app.store.GetArticle(item.result.ID)
		if err != nil {
			return kh.app, func() tea.Msg { return errorMsg{err: wrapErr("opening result", err)} }
		}
		kh.app.previousView = ViewSearch
		kh.app.view = ViewReader
		kh.app.currentArticle = article
		kh.app.loading = true
		return kh.app, kh.app.renderArticle(article)

	case search.KindVideo:
		videos, err := kh.app.store.GetVideos()
		if err != nil {
			return kh.app, func() tea.Msg { return errorMsg{err: wrapErr("opening result", err)} }
		}
		for _, v := range videos {
			if v.ID == item.result.ID {
				return kh.app, kh.app.openVideo(v)
			}
		}
		return kh.app, nil

	case search.KindThread:
		kh.app.previousView = ViewSearch
		kh.app.view = ViewThread
		kh.app.loading = true
		return kh.app, kh.app.loadThread(item.result.ID)
	}

	return kh.app, nil
}

func (kh *KeyHandler) enterSearchMode() (tea.Model, tea.Cmd) {
	kh.app.previousView = kh.app.view
	kh.app.view = ViewSearch
	kh.app.searchInput.Reset()
	kh.app.searchInput.Focus()
	kh.app.searchList.SetItems(nil)
	kh.app.clearStatus()
	return kh.app, nil
}

func (kh *KeyHandler) navigateBack() (tea.Model, tea.Cmd) {
	kh.app.clearStatus()

	switch kh.app.view {
	case ViewHome:
		return kh.app, nil

	case ViewReader:
		kh.app.view = kh.app.previousView
		if kh.app.view == ViewReader {
			kh.app.view = ViewHome
		}
		return kh.app, nil

	case ViewThread:
		if kh.app.previousView == ViewSearch {
			kh.app.view = ViewSearch
		} else {
			kh.app.view = ViewForum
			kh.app.syncContentList()
		}
		return kh.app, nil

	case ViewReply:
		kh.app.view = ViewThread
		return kh.app, nil

	case ViewSearch, ViewLogin:
		kh.app.view = ViewHome
		return kh.app, nil

	case ViewWeather:
		if len(kh.app.forecasts) > 0 {
			kh.app.forecasts = nil
			return kh.app, nil
		}
		kh.app.view = ViewHome
		return kh.app, nil

	default:
		if kh.app.filterInput.Focused() {
			kh.app.filterInput.Blur()
			return kh.app, nil
		}
		kh.app.view = ViewHome
		return kh.app, nil
	}
}

func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewHome:
		newListModel, cmd := kh.app.homeList.Update(msg)
		kh.app.homeList = newListModel
		return kh.app, cmd
	case ViewArticles, ViewVideos, ViewForum, ViewNews:
		newListModel, cmd := kh.app.contentList.Update(msg)
		kh.app.contentList = newListModel
		return kh.app, cmd
	case ViewWeather:
		if len(kh.app.forecasts) == 0 {
			newListModel, cmd := kh.app.areaList.Update(msg)
			kh.app.areaList = newListModel
			return kh.app, cmd
		}
		newViewport, cmd := kh.app.viewport.Update(msg)
		kh.app.viewport = newViewport
		return kh.app, cmd
	case ViewReader, ViewThread:
		newViewport, cmd := kh.app.viewport.Update(msg)
		kh.app.viewport = newViewport
		return kh.app, cmd
	case ViewSearch:
		newSearchList, cmd := kh.app.searchList.Update(msg)
		kh.app.searchList = newSearchList
		return kh.app, cmd
	default:
		return kh.app, nil
	}
}

type pager interface {
	nextPage()
	prevPage()
}

type controllerPager[T any] struct {
	c *listview.Controller[T]
}

func (p controllerPager[T]) nextPage() { p.c.SetPage(p.c.Page() + 1) }
func (p controllerPager[T]) prevPage() { p.c.SetPage(p.c.Page() - 1) }

func (kh *KeyHandler) activeController() pager {
	switch kh.app.view {
	case ViewArticles:
		return controllerPager[*storage.Article]{c: kh.app.articles}
	case ViewVideos:
		return controllerPager[*storage.Video]{c: kh.app.videos}
	default:
		return controllerPager[*storage.Thread]{c: kh.app.threads}
	}
}

// cycleCategory advances the active controller to the next category,
// wrapping back to "Semua".
func (kh *KeyHandler) cycleCategory() {
	switch kh.app.view {
	case ViewArticles:
		kh.app.articles.SetCategory(nextCategory(kh.app.articles.Categories(), kh.app.articles.SelectedCategory()))
	case ViewVideos:
		kh.app.videos.SetCategory(nextCategory(kh.app.videos.Categories(), kh.app.videos.SelectedCategory()))
	}
}

func nextCategory(categories []listview.Category, currentID string) string {
	for i, cat := range categories {
		if cat.ID == currentID {
			return categories[(i+1)%len(categories)].ID
		}
	}
	return listview.CategoryAll
}

func (kh *KeyHandler) GetHelpForCurrentView() []string {
	bindings := kh.config.Keys.Bindings

	switch kh.app.view {
	case ViewHome:
		return []string{"enter: open", kh.modifierKey + bindings.Search + ": search", bindings.Quit + ": quit"}
	case ViewArticles:
		return []string{"enter: read", "/: filter", bindings.Category + ": category", bindings.PrevPage + "/" + bindings.NextPage + ": page", bindings.Refresh + ": refresh", "esc: back"}
	case ViewVideos:
		return []string{"enter: play", "/: filter", bindings.Category + ": category", bindings.PrevPage + "/" + bindings.NextPage + ": page", "esc: back"}
	case ViewForum:
		return []string{"enter: open thread", "/: filter", bindings.PrevPage + "/" + bindings.NextPage + ": page", bindings.Refresh + ": refresh", "esc: back"}
	case ViewThread:
		if kh.app.session.IsLoggedIn() {
			return []string{kh.modifierKey + "p: reply", "↑↓: scroll", "esc: back"}
		}
		return []string{"↑↓: scroll", "esc: back"}
	case ViewReader:
		return []string{"↑↓: scroll", "esc: back"}
	case ViewNews:
		return []string{"enter: read", bindings.Refresh + ": refresh", "esc: back"}
	case ViewWeather:
		if len(kh.app.forecasts) == 0 {
			return []string{"enter: forecast", "/: filter", "esc: back"}
		}
		return []string{"↑↓: scroll", "esc: area list"}
	case ViewSearch:
		return nil
	case ViewLogin, ViewReply:
		return nil
	default:
		return nil
	}
}
