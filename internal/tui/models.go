package tui

type View int

const (
	ViewHome View = iota
	ViewArticles
	ViewVideos
	ViewForum
	ViewThread
	ViewReader
	ViewSearch
	ViewNews
	ViewWeather
	ViewLogin
	ViewReply
)
