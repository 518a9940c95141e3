package entity

import (
	"encoding/json"
	"time"
)

// postJSON is the serialized form of a Post stored in the blob cache.
// The slug is only carried when it has been computed or explicitly set,
// so memoization survives a cache round-trip.
type postJSON struct {
	URL        string            `json:"url,omitempty"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Date       time.Time         `json:"date,omitzero"`
	Slug       string            `json:"slug,omitempty"`
	Categories map[string]string `json:"categories,omitempty"`
	Images     []string          `json:"images,omitempty"`
	Meta       map[string]any    `json:"meta,omitempty"`
}

func (p *Post) MarshalJSON() ([]byte, error) {
	out := postJSON{
		URL:        p.url,
		Title:      p.title,
		Content:    p.content,
		Date:       p.date,
		Categories: p.categories,
		Meta:       p.meta,
	}
	if p.slugSet {
		out.Slug = p.slug
	}
	if p.imagesScanned {
		out.Images = p.images
	}
	return json.Marshal(out)
}

func (p *Post) UnmarshalJSON(data []byte) error {
	var in postJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	p.url = in.URL
	p.title = in.Title
	p.content = in.Content
	p.date = in.Date
	p.slug = in.Slug
	p.slugSet = in.Slug != ""
	p.images = in.Images
	p.imagesScanned = len(in.Images) > 0

	// Keys are already slugified; do not pass through SetCategories.
	p.categories = in.Categories
	if p.categories == nil {
		p.categories = map[string]string{}
	}
	p.meta = in.Meta
	if p.meta == nil {
		p.meta = map[string]any{}
	}
	return nil
}
