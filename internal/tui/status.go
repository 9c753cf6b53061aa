package tui

import "fmt"

// Canonical short status messages used across the app.
const (
	MsgRefreshing  = "Refreshing…"
	MsgLoading     = "Loading…"
	MsgLoggingIn   = "Logging in…"
	MsgPosting     = "Posting reply…"
	MsgNoResults   = "No results"
	MsgLoggedOut   = "Logged out"
	MsgOffline     = "Offline: showing cached content"
	MsgReplyPosted = "Reply posted"
)

func MsgLoggedInAs(name string) string {
	if name == "" {
		return "Logged in"
	}
	return "Logged in as " + name
}

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

func MsgPagePosition(page, totalPages, totalItems int) string {
	return fmt.Sprintf("page %d/%d • %d items", page, totalPages, totalItems)
}
