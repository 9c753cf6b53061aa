package news

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Agri News</title>
    <item>
      <title>New drought-resistant rice variety released</title>
      <link>https://example.com/rice</link>
      <guid>rice-001</guid>
      <description>Researchers announce a hardier strain.</description>
      <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
      <enclosure url="https://example.com/rice.jpg" type="image/jpeg" length="1000"/>
    </item>
    <item>
      <title>Fertilizer prices drop</title>
      <link>https://example.com/fertilizer</link>
      <description>Input costs ease for smallholders.</description>
    </item>
  </channel>
</rss>`

func TestParseRSS(t *testing.T) {
	parser := NewParser()
	items, err := parser.Parse(strings.NewReader(sampleRSS), "source-1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "New drought-resistant rice variety released", first.Title)
	assert.Equal(t, "Researchers announce a hardier strain.", first.Description)
	assert.Equal(t, "https://example.com/rice", first.URL)
	assert.Equal(t, "https://example.com/rice.jpg", first.Image)
	assert.Equal(t, "source-1", first.SourceID)
	assert.False(t, first.Published.IsZero())
	assert.NotEmpty(t, first.ID)

	second := items[1]
	assert.Equal(t, "Fertilizer prices drop", second.Title)
	assert.Empty(t, second.Image)
}

func TestParseInvalidFeed(t *testing.T) {
	parser := NewParser()
	_, err := parser.Parse(strings.NewReader("not a feed"), "source-1")
	assert.Error(t, err)
}

func TestItemIDsStableAcrossFetches(t *testing.T) {
	parser := NewParser()

	first, err := parser.Parse(strings.NewReader(sampleRSS), "source-1")
	require.NoError(t, err)
	second, err := parser.Parse(strings.NewReader(sampleRSS), "source-1")
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestItemIDsScopedToSource(t *testing.T) {
	parser := NewParser()

	a, err := parser.Parse(strings.NewReader(sampleRSS), "source-a")
	require.NoError(t, err)
	b, err := parser.Parse(strings.NewReader(sampleRSS), "source-b")
	require.NoError(t, err)

	assert.NotEqual(t, a[0].ID, b[0].ID)
}
