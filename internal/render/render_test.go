package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyConvertsHTML(t *testing.T) {
	md := Body(`<p>Gunakan <strong>pupuk organik</strong> secukupnya.</p>`)
	assert.Contains(t, md, "**pupuk organik**")
	assert.NotContains(t, md, "<p>")
}

func TestBodySanitizesFirst(t *testing.T) {
	md := Body(`<p>aman</p><script>alert("xss")</script>`)
	assert.Contains(t, md, "aman")
	assert.NotContains(t, md, "alert")
	assert.NotContains(t, md, "script")
}

func TestBodyEmptyInput(t *testing.T) {
	assert.Empty(t, Body(""))
}

func TestSnippet(t *testing.T) {
	long := "<p>" + strings.Repeat("kata ", 50) + "</p>"

	s := Snippet(long, 40)
	assert.LessOrEqual(t, len([]rune(s)), 41, "snippet plus ellipsis")
	assert.True(t, strings.HasSuffix(s, "…"))

	short := Snippet("<p>singkat</p>", 100)
	assert.Equal(t, "singkat", short)

	assert.Equal(t, "apa saja", Snippet("<p>apa\n  saja</p>", 0))
}
