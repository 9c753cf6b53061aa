// Package render turns sanitized HTML bodies into markdown suitable
// for terminal display.
package render

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/agrilearn/agrilearn/internal/sanitize"
)

// Body sanitizes an HTML body and converts it to markdown. Conversion
// failures fall back to the sanitized text rather than dropping the
// body.
func Body(html string) string {
	clean := sanitize.HTML(html)
	md, err := htmltomarkdown.ConvertString(clean)
	if err != nil {
		return strings.TrimSpace(clean)
	}
	return strings.TrimSpace(md)
}

// Snippet returns a plain-text preview of at most max runes, for list
// rows and card descriptions.
func Snippet(html string, max int) string {
	text := Body(html)
	text = strings.Join(strings.Fields(text), " ")
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
