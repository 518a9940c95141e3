package rss

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"reprint/internal/domain/entity"
	"reprint/internal/domain/repository"
)

type postSource struct {
	parser *gofeed.Parser
	url    string
}

// NewPostSource returns a PostSource bound to one syndication feed URL,
// fetched and parsed with gofeed.
func NewPostSource(url string) repository.PostSource {
	return &postSource{
		parser: gofeed.NewParser(),
		url:    url,
	}
}

func (s *postSource) Fetch(ctx context.Context) ([]entity.RawItem, error) {
	feed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.url, err)
	}

	items := make([]entity.RawItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		items = append(items, toRawItem(item))
	}
	return items, nil
}

func toRawItem(item *gofeed.Item) entity.RawItem {
	raw := entity.RawItem{
		Title:      item.Title,
		Content:    itemContent(item),
		Date:       itemDate(item),
		Permalink:  item.Link,
		Categories: item.Categories,
	}

	for _, thumbnail := range mediaThumbnails(item) {
		raw.Enclosures = append(raw.Enclosures, entity.RawEnclosure{ThumbnailURL: thumbnail})
	}
	for _, enclosure := range item.Enclosures {
		if enclosure == nil || enclosure.URL == "" {
			continue
		}
		raw.Enclosures = append(raw.Enclosures, entity.RawEnclosure{URL: enclosure.URL})
	}

	return raw
}

// itemContent prefers the full content element, falling back to the
// description most RSS feeds carry instead.
func itemContent(item *gofeed.Item) string {
	if item.Content != "" {
		return item.Content
	}
	return item.Description
}

func itemDate(item *gofeed.Item) string {
	if item.Published != "" {
		return item.Published
	}
	return item.Updated
}

// mediaThumbnails pulls media:thumbnail URLs from the item's extension
// tree.
func mediaThumbnails(item *gofeed.Item) []string {
	var urls []string
	for _, extension := range item.Extensions["media"]["thumbnail"] {
		if url := extension.Attrs["url"]; url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}
