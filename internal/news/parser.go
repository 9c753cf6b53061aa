package news

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/mmcdole/gofeed"

	"github.com/agrilearn/agrilearn/internal/storage"
)

type Parser struct {
	parser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		parser: gofeed.NewParser(),
	}
}

func (p *Parser) Parse(reader io.Reader, sourceID string) ([]*storage.NewsItem, error) {
	feed, err := p.parser.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}

	items := make([]*storage.NewsItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		item := &storage.NewsItem{
			ID:          generateItemID(sourceID, entry),
			SourceID:    sourceID,
			Title:       entry.Title,
			Description: getDescription(entry),
			URL:         entry.Link,
			Image:       extractImage(entry),
		}

		if entry.PublishedParsed != nil {
			item.Published = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			item.Published = *entry.UpdatedParsed
		}

		items = append(items, item)
	}

	return items, nil
}

func getDescription(entry *gofeed.Item) string {
	if entry.Description != "" {
		return entry.Description
	}
	return entry.Content
}

func extractImage(entry *gofeed.Item) string {
	if entry.Image != nil && entry.Image.URL != "" {
		return entry.Image.URL
	}
	for _, enc := range entry.Enclosures {
		if enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}

// generateItemID keys an item by its GUID when the feed provides one,
// falling back to the link so re-fetches stay stable.
func generateItemID(sourceID string, entry *gofeed.Item) string {
	key := entry.GUID
	if key == "" {
		key = entry.Link
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte(sourceID+":"+key)))
}
