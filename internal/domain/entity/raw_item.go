package entity

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// RawItem is one feed item as the external parser hands it over,
// before normalization.
type RawItem struct {
	Title      string
	Content    string
	Date       string
	Permalink  string
	Categories []string
	Enclosures []RawEnclosure
}

// RawEnclosure is an attachment on a raw item. Either URL may be empty.
type RawEnclosure struct {
	ThumbnailURL string
	URL          string
}

// Extensions an enclosure link may carry to count as an image.
var imageExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "bmp": true,
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NewPostFromRaw normalizes a raw feed item into a Post. An unparsable
// date fails the whole construction. Enclosures contribute their
// thumbnail URL when present, otherwise their link URL when its file
// extension is a known image type; duplicates are dropped keeping
// first-seen order.
func NewPostFromRaw(item RawItem, styler Styler) (*Post, error) {
	date, err := parseItemDate(item.Date)
	if err != nil {
		return nil, err
	}

	post := New(Details{
		URL:        item.Permalink,
		Title:      item.Title,
		Content:    item.Content,
		Date:       date,
		Categories: item.Categories,
		Images:     enclosureImages(item.Enclosures),
	})
	post.SetStyler(styler)
	return post, nil
}

func parseItemDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("item has no date")
	}
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable item date %q", value)
}

func enclosureImages(enclosures []RawEnclosure) []string {
	var images []string
	seen := map[string]bool{}
	add := func(url string) {
		if url != "" && !seen[url] {
			seen[url] = true
			images = append(images, url)
		}
	}

	for _, enclosure := range enclosures {
		if enclosure.ThumbnailURL != "" {
			add(enclosure.ThumbnailURL)
			continue
		}
		if isImageURL(enclosure.URL) {
			add(enclosure.URL)
		}
	}
	return images
}

func isImageURL(url string) bool {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(url), "."))
	return imageExtensions[ext]
}
