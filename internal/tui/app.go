package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/agrilearn/agrilearn/internal/api"
	"github.com/agrilearn/agrilearn/internal/config"
	"github.com/agrilearn/agrilearn/internal/listview"
	"github.com/agrilearn/agrilearn/internal/media"
	"github.com/agrilearn/agrilearn/internal/news"
	"github.com/agrilearn/agrilearn/internal/search"
	"github.com/agrilearn/agrilearn/internal/session"
	"github.com/agrilearn/agrilearn/internal/storage"
	"github.com/agrilearn/agrilearn/internal/weather"
)

type App struct {
	config        *config.Config
	store         *storage.Store
	client        *api.Client
	session       *session.Session
	launcher      *media.Launcher
	searchEngine  search.Searcher
	newsManager   *news.Manager
	weatherClient *weather.Client
	keyHandler    *KeyHandler

	// Listing state comes from the controllers; the bubbles lists only
	// display the controller's visible page.
	articles *listview.Controller[*storage.Article]
	videos   *listview.Controller[*storage.Video]
	threads  *listview.Controller[*storage.Thread]

	homeList    list.Model
	contentList list.Model
	searchList  list.Model
	areaList    list.Model

	filterInput textinput.Model
	searchInput textinput.Model
	textInput   textinput.Model
	viewport    viewport.Model

	view         View
	previousView View

	currentArticle *storage.Article
	currentVideo   *storage.Video
	currentThread  *storage.Thread
	newsItems      []*storage.NewsItem
	forecasts      []weather.Forecast
	forecastArea   string

	loginStep  int
	loginEmail string

	width   int
	height  int
	err     error
	status  string
	kind    StatusKind
	loading bool

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

func NewApp(cfg *config.Config, store *storage.Store, client *api.Client, sess *session.Session, searcher search.Searcher) *App {
	homeList := list.New(homeItems(sess), list.NewDefaultDelegate(), 0, 0)
	homeList.Title = "› " + AppName
	homeList.SetShowStatusBar(false)
	homeList.SetFilteringEnabled(false)
	homeList.SetShowHelp(true)

	contentList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	contentList.SetShowStatusBar(false)
	contentList.SetFilteringEnabled(false)
	contentList.SetShowHelp(false)

	searchList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	searchList.Title = "› search results"
	searchList.SetShowStatusBar(false)
	searchList.SetShowHelp(false)
	searchList.SetFilteringEnabled(false)

	areaList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	areaList.Title = "› pick a forecast area"
	areaList.SetShowStatusBar(false)
	areaList.SetFilteringEnabled(true)
	areaList.SetShowHelp(true)

	vp := viewport.New(0, 0)

	fi := textinput.New()
	fi.Placeholder = "Filter by title..."

	si := textinput.New()
	si.Placeholder = "Search cached articles, videos, and forum..."

	ti := textinput.New()

	weatherClient, err := weather.NewClient(cfg)
	if err != nil {
		weatherClient = nil
	}

	app := &App{
		config:        cfg,
		store:         store,
		client:        client,
		session:       sess,
		launcher:      media.NewLauncher(cfg),
		searchEngine:  searcher,
		newsManager:   news.NewManager(store, cfg),
		weatherClient: weatherClient,

		articles: listview.NewCategorized(cfg.UI.PageSizes.Articles,
			func(a *storage.Article, q string) bool { return listview.TitleMatch(a.Title, q) },
			func(a *storage.Article) string { return a.CategoryID }),
		videos: listview.NewCategorized(cfg.UI.PageSizes.Videos,
			func(v *storage.Video, q string) bool { return listview.TitleMatch(v.Title, q) },
			func(v *storage.Video) string { return v.CategoryID }),
		threads: listview.New(cfg.UI.PageSizes.Forum,
			func(t *storage.Thread, q string) bool {
				return listview.KeywordMatch(t.Title, t.Keywords, q)
			}),

		homeList:    homeList,
		contentList: contentList,
		searchList:  searchList,
		areaList:    areaList,
		filterInput: fi,
		searchInput: si,
		textInput:   ti,
		viewport:    vp,

		view:         ViewHome,
		previousView: ViewHome,
	}

	app.keyHandler = NewKeyHandler(app, cfg)

	return app
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > 120 {
		wordWrapWidth = 120
	}
	if wordWrapWidth < 40 {
		wordWrapWidth = 40
	}
	if a.width < 50 {
		wordWrapWidth = a.width - 4
		if wordWrapWidth < 20 {
			wordWrapWidth = 20
		}
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.homeList.SetSize(msg.Width, msg.Height-3)
		a.contentList.SetSize(msg.Width, msg.Height-8)
		a.areaList.SetSize(msg.Width, msg.Height-3)
		searchListHeight := msg.Height - 10
		if searchListHeight < 5 {
			searchListHeight = 5
		}
		a.searchList.SetSize(msg.Width, searchListHeight)
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - 3

		inputWidth := msg.Width - 4
		if inputWidth < 20 {
			inputWidth = msg.Width
		}
		a.textInput.Width = inputWidth

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case articlesLoadedMsg:
		a.loading = false
		if msg.fromCache {
			a.setStatus(MsgOffline, StatusWarn)
		} else {
			a.clearStatus()
		}
		a.articles.SetItems(msg.articles)
		a.articles.SetCategories(toListviewCategories(msg.categories))
		if a.view == ViewArticles {
			a.syncContentList()
		}

	case videosLoadedMsg:
		a.loading = false
		if msg.fromCache {
			a.setStatus(MsgOffline, StatusWarn)
		} else {
			a.clearStatus()
		}
		a.videos.SetItems(msg.videos)
		a.videos.SetCategories(toListviewCategories(msg.categories))
		if a.view == ViewVideos {
			a.syncContentList()
		}

	case threadsLoadedMsg:
		a.loading = false
		if msg.fromCache {
			a.setStatus(MsgOffline, StatusWarn)
		} else {
			a.clearStatus()
		}
		a.threads.SetItems(msg.threads)
		if a.view == ViewForum {
			a.syncContentList()
		}

	case threadLoadedMsg:
		a.loading = false
		a.currentThread = msg.thread
		if a.view == ViewThread {
			return a, a.renderThread(msg.thread)
		}

	case newsLoadedMsg:
		a.loading = false
		a.newsItems = msg.items
		if a.view == ViewNews {
			a.syncContentList()
		}

	case weatherLoadedMsg:
		a.loading = false
		a.forecasts = msg.forecasts
		a.forecastArea = msg.area
		if a.view == ViewWeather {
			return a, a.renderForecasts()
		}

	case contentRenderedMsg:
		a.loading = false
		a.viewport.SetContent(msg.content)
		a.viewport.GotoTop()

	case searchResultsMsg:
		if a.view == ViewSearch {
			a.searchList.SetItems(toSearchItems(msg.results))
			if len(msg.results) == 0 {
				a.setStatus(MsgNoResults, StatusInfo)
			} else {
				a.setStatus(MsgResultsCount(len(msg.results)), StatusInfo)
			}
		}

	case loginResultMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
			a.loginStep = 0
			a.textInput.Reset()
			a.textInput.Placeholder = "Email"
			a.textInput.EchoMode = textinput.EchoNormal
		} else {
			if a.session.IsLoggedIn() {
				a.setStatus(MsgLoggedInAs(a.session.User().Name), StatusSuccess)
			} else {
				a.setStatus(MsgLoggedOut, StatusInfo)
			}
			a.view = ViewHome
			a.homeList.SetItems(homeItems(a.session))
		}

	case replyPostedMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
		} else {
			a.setStatus(MsgReplyPosted, StatusSuccess)
			a.view = ViewThread
			return a, a.loadThread(msg.threadID)
		}

	case videoOpenedMsg:
		if msg.err != nil {
			a.err = msg.err
		}

	case errorMsg:
		a.loading = false
		a.err = msg.err
	}

	switch a.view {
	case ViewHome:
		newListModel, cmd := a.homeList.Update(msg)
		a.homeList = newListModel
		cmds = append(cmds, cmd)
	case ViewArticles, ViewVideos, ViewForum, ViewNews:
		if a.filterInput.Focused() {
			newInput, cmd := a.filterInput.Update(msg)
			a.filterInput = newInput
			cmds = append(cmds, cmd)
			a.applyFilter()
		} else {
			newListModel, cmd := a.contentList.Update(msg)
			a.contentList = newListModel
			cmds = append(cmds, cmd)
		}
	case ViewReader, ViewThread:
		switch msg.(type) {
		case tea.KeyMsg, tea.WindowSizeMsg, tea.MouseMsg:
			newViewport, cmd := a.viewport.Update(msg)
			a.viewport = newViewport
			cmds = append(cmds, cmd)
		}
	case ViewWeather:
		if len(a.forecasts) == 0 {
			newListModel, cmd := a.areaList.Update(msg)
			a.areaList = newListModel
			cmds = append(cmds, cmd)
		} else {
			switch msg.(type) {
			case tea.KeyMsg, tea.WindowSizeMsg, tea.MouseMsg:
				newViewport, cmd := a.viewport.Update(msg)
				a.viewport = newViewport
				cmds = append(cmds, cmd)
			}
		}
	case ViewSearch:
		newSearchInput, cmd := a.searchInput.Update(msg)
		a.searchInput = newSearchInput
		cmds = append(cmds, cmd)

		newSearchList, listCmd := a.searchList.Update(msg)
		a.searchList = newSearchList
		cmds = append(cmds, listCmd)
	case ViewLogin, ViewReply:
		newTextInput, cmd := a.textInput.Update(msg)
		a.textInput = newTextInput
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// syncContentList rebuilds the visible list from the active
// controller's current page.
func (a *App) syncContentList() {
	switch a.view {
	case ViewArticles:
		page := a.articles.VisiblePage()
		items := make([]list.Item, len(page))
		for i, art := range page {
			items[i] = articleItem{article: art}
		}
		a.contentList.SetItems(items)
		a.contentList.Title = a.listTitle("articles", a.categoryName(a.articles.Categories(), a.articles.SelectedCategory()))
	case ViewVideos:
		page := a.videos.VisiblePage()
		items := make([]list.Item, len(page))
		for i, v := range page {
			items[i] = videoItem{video: v}
		}
		a.contentList.SetItems(items)
		a.contentList.Title = a.listTitle("videos", a.categoryName(a.videos.Categories(), a.videos.SelectedCategory()))
	case ViewForum:
		page := a.threads.VisiblePage()
		items := make([]list.Item, len(page))
		for i, t := range page {
			items[i] = threadItem{thread: t}
		}
		a.contentList.SetItems(items)
		a.contentList.Title = a.listTitle("forum", "")
	case ViewNews:
		items := make([]list.Item, len(a.newsItems))
		for i, n := range a.newsItems {
			items[i] = newsListItem{item: n}
		}
		a.contentList.SetItems(items)
		a.contentList.Title = "› agri news"
	}
	a.contentList.Select(0)
}

func (a *App) listTitle(section, category string) string {
	if category == "" || category == listview.CategoryAll {
		return "› " + section
	}
	return "› " + section + " · " + category
}

func (a *App) categoryName(categories []listview.Category, id string) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

// applyFilter pushes the filter input's text into the active
// controller on every keystroke.
func (a *App) applyFilter() {
	text := a.filterInput.Value()
	switch a.view {
	case ViewArticles:
		if a.articles.SearchText() != text {
			a.articles.SetSearchText(text)
			a.syncContentList()
		}
	case ViewVideos:
		if a.videos.SearchText() != text {
			a.videos.SetSearchText(text)
			a.syncContentList()
		}
	case ViewForum:
		if a.threads.SearchText() != text {
			a.threads.SetSearchText(text)
			a.syncContentList()
		}
	}
}

func (a *App) setStatus(msg string, kind StatusKind) {
	a.status = msg
	a.kind = kind
	a.err = nil
}

func (a *App) clearStatus() {
	a.status = ""
	a.err = nil
}

func (a *App) View() string {
	var content string

	switch a.view {
	case ViewHome:
		content = a.homeList.View()
	case ViewArticles, ViewVideos, ViewForum, ViewNews:
		content = a.listingView()
	case ViewReader, ViewThread:
		if a.loading {
			content = renderCentered(a.width, a.height-3, renderMuted(MsgLoading))
		} else {
			content = a.viewport.View()
		}
	case ViewWeather:
		if a.loading {
			content = renderCentered(a.width, a.height-3, renderMuted(MsgLoading))
		} else if len(a.forecasts) == 0 {
			content = a.areaList.View()
		} else {
			content = a.viewport.View()
		}
	case ViewSearch:
		content = a.searchView()
	case ViewLogin:
		header := "› login"
		if a.loginStep == 1 {
			header = "› login · " + a.loginEmail
		}
		content = renderCentered(a.width, a.height-3,
			lipgloss.JoinVertical(
				lipgloss.Center,
				TitleStyle.Render(header),
				"",
				renderInputFrame(a.textInput.View(), true, a.width/2),
				"",
				renderHelp("Enter to continue • Esc to cancel"),
			),
		)
	case ViewReply:
		threadTitle := ""
		if a.currentThread != nil {
			threadTitle = truncateEnd(a.currentThread.Title, a.width-14)
		}
		content = renderCentered(a.width, a.height-3,
			lipgloss.JoinVertical(
				lipgloss.Center,
				TitleStyle.Render("› reply"),
				renderMuted(threadTitle),
				"",
				renderInputFrame(a.textInput.View(), true, a.width/2),
				"",
				renderHelp("Enter to post • Esc to cancel"),
			),
		)
	}

	customStatus := a.getCustomStatusBar()
	if customStatus != "" {
		separatorWidth := a.width - 2
		if separatorWidth < 0 {
			separatorWidth = 0
		}
		separator := SeparatorStyle.Render("─" + strings.Repeat("─", separatorWidth))

		return lipgloss.JoinVertical(lipgloss.Top, content, separator, customStatus)
	}

	return content
}

func (a *App) listingView() string {
	if a.loading {
		return renderCentered(a.width, a.height-3, renderMuted(MsgLoading))
	}

	var header string
	switch a.view {
	case ViewArticles:
		header = a.paginationLine(a.articles.Page(), a.articles.TotalPages(), a.articles.TotalItems())
	case ViewVideos:
		header = a.paginationLine(a.videos.Page(), a.videos.TotalPages(), a.videos.TotalItems())
	case ViewForum:
		header = a.paginationLine(a.threads.Page(), a.threads.TotalPages(), a.threads.TotalItems())
	case ViewNews:
		header = renderMuted(fmt.Sprintf("%d items cached", len(a.newsItems)))
	}

	rows := []string{a.contentList.View()}
	if a.view != ViewNews {
		filterView := renderInputFrame(a.filterInput.View(), a.filterInput.Focused(), a.width-10)
		rows = append([]string{filterView}, rows...)
	}
	rows = append(rows, header)

	return ContentWrapper(a.width, a.height-3).Render(
		lipgloss.JoinVertical(lipgloss.Top, rows...),
	)
}

func (a *App) paginationLine(page, totalPages, totalItems int) string {
	return renderMuted(MsgPagePosition(page, totalPages, totalItems))
}

func (a *App) searchView() string {
	searchInputWidth := a.width - 8
	if searchInputWidth < 10 {
		searchInputWidth = a.width - 4
	}
	a.searchInput.Width = searchInputWidth

	searchInput := renderInputFrame(a.searchInput.View(), a.searchInput.Focused(), searchInputWidth)

	helpText := ""
	if a.searchInput.Focused() {
		helpText = "Type to search • Enter: run • Tab/↓: results • Esc: back"
	} else if len(a.searchList.Items()) > 0 {
		helpText = "↑↓: navigate • Enter: open • Tab/↑: search box • Esc: back"
	} else {
		helpText = "No results found • Tab/↑: search box • Esc: back"
	}

	searchContent := lipgloss.JoinVertical(
		lipgloss.Top,
		renderHeader("› offline search", "", a.width),
		"",
		searchInput,
		renderMuted(helpText),
		"",
		a.searchList.View(),
	)

	return ContentWrapper(a.width, a.height-3).Render(searchContent)
}

func (a *App) getCustomStatusBar() string {
	commands := a.keyHandler.GetHelpForCurrentView()

	if a.err != nil {
		errorText := ErrorMessageStyle.Render(fmt.Sprintf("✗ %v", a.err))
		return StatusBarStyle.Width(a.width).Render(errorText)
	}

	if a.status != "" {
		var style lipgloss.Style
		switch a.kind {
		case StatusSuccess:
			style = StatusSuccessStyle
		case StatusWarn:
			style = StatusWarnStyle
		case StatusError:
			style = StatusErrorStyle
		default:
			style = StatusInfoStyle
		}
		return StatusBarStyle.Width(a.width).Render(style.Render(a.status))
	}

	if len(commands) > 0 {
		commandText := strings.Join(commands, " • ")
		return StatusBarStyle.Width(a.width).Render(commandText)
	}

	return ""
}

func toListviewCategories(cats []*storage.Category) []listview.Category {
	out := make([]listview.Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, listview.Category{ID: c.ID, Name: c.Name})
	}
	return out
}

func toSearchItems(results []*search.Result) []list.Item {
	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = searchResultItem{result: r}
	}
	return items
}

func homeItems(sess *session.Session) []list.Item {
	items := []list.Item{
		sectionItem{title: "Articles", desc: "Farming techniques, guides, and news", view: ViewArticles},
		sectionItem{title: "Video Tutorials", desc: "Step-by-step tutorials from the field", view: ViewVideos},
		sectionItem{title: "Forum", desc: "Ask questions, share experience", view: ViewForum},
		sectionItem{title: "Agri News", desc: "Headlines from external agriculture feeds", view: ViewNews},
		sectionItem{title: "Weather", desc: "BMKG forecasts for your area", view: ViewWeather},
		sectionItem{title: "Search", desc: "Search everything cached locally", view: ViewSearch},
	}
	if sess != nil && sess.IsLoggedIn() {
		items = append(items, sectionItem{
			title: "Logout",
			desc:  "Signed in as " + sess.User().Name,
			view:  ViewLogin,
		})
	} else {
		items = append(items, sectionItem{
			title: "Login",
			desc:  "Sign in to post on the forum",
			view:  ViewLogin,
		})
	}
	return items
}

type sectionItem struct {
	title string
	desc  string
	view  View
}

func (i sectionItem) Title() string       { return i.title }
func (i sectionItem) Description() string { return i.desc }
func (i sectionItem) FilterValue() string { return i.title }

type articleItem struct {
	article *storage.Article
}

func (i articleItem) Title() string { return i.article.Title }

func (i articleItem) Description() string {
	desc := truncateEnd(i.article.Description, 80)

	timeStr := ""
	if !i.article.CreatedAt.IsZero() {
		timeStr = TimeStyle.Render(" • " + i.article.CreatedAt.Format("Jan 2, 2006"))
	}

	return renderMuted(desc) + timeStr
}

func (i articleItem) FilterValue() string { return i.article.Title }

type videoItem struct {
	video *storage.Video
}

func (i videoItem) Title() string { return i.video.Title }

func (i videoItem) Description() string {
	desc := truncateEnd(i.video.Description, 60)
	if desc == "" {
		desc = truncateMiddle(i.video.URL, 60)
	}
	return renderMuted(desc)
}

func (i videoItem) FilterValue() string { return i.video.Title }

type threadItem struct {
	thread *storage.Thread
}

func (i threadItem) Title() string { return i.thread.Title }

func (i threadItem) Description() string {
	parts := []string{}
	if len(i.thread.Keywords) > 0 {
		parts = append(parts, CategoryStyle.Render(strings.Join(i.thread.Keywords, ", ")))
	}
	if n := len(i.thread.Replies); n > 0 {
		parts = append(parts, renderMuted(fmt.Sprintf("%d replies", n)))
	}
	if len(parts) == 0 {
		return renderMuted(truncateEnd(i.thread.Content, 60))
	}
	return strings.Join(parts, renderMuted(" • "))
}

func (i threadItem) FilterValue() string { return i.thread.Title }

type newsListItem struct {
	item *storage.NewsItem
}

func (i newsListItem) Title() string {
	if i.item.Read {
		return ReadItemStyle.Render(i.item.Title)
	}
	return UnreadItemStyle.Render("● " + i.item.Title)
}

func (i newsListItem) Description() string {
	timeStr := ""
	if !i.item.Published.IsZero() {
		timeStr = TimeStyle.Render(" • " + i.item.Published.Format("Jan 2"))
	}
	return renderMuted(truncateEnd(i.item.Description, 70)) + timeStr
}

func (i newsListItem) FilterValue() string { return i.item.Title }

type searchResultItem struct {
	result *search.Result
}

func (i searchResultItem) Title() string {
	prefix := ""
	switch i.result.Kind {
	case search.KindArticle:
		prefix = "📄 "
	case search.KindVideo:
		prefix = "🎬 "
	case search.KindThread:
		prefix = "💬 "
	}
	return prefix + i.result.Title
}

func (i searchResultItem) Description() string {
	return renderMuted(truncateEnd(i.result.Snippet, 70))
}

func (i searchResultItem) FilterValue() string { return i.result.Title }

type areaItem struct {
	area     weather.Area
	province string
}

func (i areaItem) Title() string       { return i.area.Name }
func (i areaItem) Description() string { return renderMuted(i.province) }
func (i areaItem) FilterValue() string { return i.area.Name + " " + i.province }

type articlesLoadedMsg struct {
	articles   []*storage.Article
	categories []*storage.Category
	fromCache  bool
}

type videosLoadedMsg struct {
	videos     []*storage.Video
	categories []*storage.Category
	fromCache  bool
}

type threadsLoadedMsg struct {
	threads   []*storage.Thread
	fromCache bool
}

type threadLoadedMsg struct {
	thread *storage.Thread
}

type newsLoadedMsg struct {
	items []*storage.NewsItem
}

type weatherLoadedMsg struct {
	forecasts []weather.Forecast
	area      string
}

type contentRenderedMsg struct {
	content string
}

type searchResultsMsg struct {
	results []*search.Result
}

type loginResultMsg struct {
	err error
}

type replyPostedMsg struct {
	threadID string
	err      error
}

type videoOpenedMsg struct {
	err error
}

type errorMsg struct {
	err error
}
