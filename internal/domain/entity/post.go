package entity

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"reprint/internal/htmlutil"
	"reprint/internal/textutil"
)

const (
	// DefaultURLPattern builds the relative output path for a post.
	DefaultURLPattern = "{{year}}/{{month}}/{{slug}}"

	// DefaultSummaryLength caps the visible characters in a summary.
	DefaultSummaryLength = 120

	defaultSummaryEnding = "..."
)

// Styler is a pure text transform applied to rendered titles and
// content, e.g. converting straight quotes to typographic ones.
// Implementations are best-effort and must never fail.
type Styler func(string) string

// Post is one normalized feed item. Raw fields are fixed at
// construction; derived fields (slug, inline images) are computed once
// and memoized. Categories and meta are the only mutable parts.
type Post struct {
	url     string
	title   string
	content string
	date    time.Time

	slug    string
	slugSet bool

	images        []string
	imagesScanned bool

	categories map[string]string
	meta       map[string]any

	styler Styler
}

// Details carries the explicit field values for a Post. Zero values
// mean "absent"; a non-empty Slug overrides derivation.
type Details struct {
	URL        string
	Title      string
	Content    string
	Date       time.Time
	Slug       string
	Categories []string
	Images     []string
}

// New builds a Post from explicit field values.
func New(details Details) *Post {
	p := &Post{
		url:        details.URL,
		title:      details.Title,
		content:    details.Content,
		date:       details.Date,
		categories: map[string]string{},
		meta:       map[string]any{},
	}
	if details.Slug != "" {
		p.slug = details.Slug
		p.slugSet = true
	}
	if len(details.Images) > 0 {
		p.images = append([]string(nil), details.Images...)
		p.imagesScanned = true
	}
	if len(details.Categories) > 0 {
		p.SetCategories(details.Categories)
	}
	return p
}

// SetStyler installs the text transform used by the rendered views.
// A nil styler leaves text untouched.
func (p *Post) SetStyler(styler Styler) {
	p.styler = styler
}

func (p *Post) style(s string) string {
	if p.styler == nil {
		return s
	}
	return p.styler(s)
}

// OriginalURL returns the source permalink, or "" if none was known.
func (p *Post) OriginalURL() string {
	return p.url
}

// Date returns the publication time; the zero time means "no date".
func (p *Post) Date() time.Time {
	return p.date
}

// Title returns the styled title.
func (p *Post) Title() string {
	return p.style(p.title)
}

// RawTitle returns the title exactly as supplied by the feed.
func (p *Post) RawTitle() string {
	return p.title
}

// Content returns the styled content, optionally preceded by an <h1>
// wrapping the escaped styled title.
func (p *Post) Content(withTitle bool) string {
	return p.contentView(withTitle, true)
}

// RawContent is Content without the styling pass; the prepended title,
// if requested, is the raw one (still escaped).
func (p *Post) RawContent(withTitle bool) string {
	return p.contentView(withTitle, false)
}

func (p *Post) contentView(withTitle, styled bool) string {
	content := p.content
	if styled {
		content = p.style(content)
	}

	if withTitle && p.title != "" {
		title := p.title
		if styled {
			title = p.style(title)
		}
		content = "<h1>" + textutil.Escape(title) + "</h1>" + content
	}

	return content
}

// SummaryOptions tunes Summary. The zero value gives a styled,
// HTML-preserving summary of DefaultSummaryLength ending in "...".
type SummaryOptions struct {
	Length int    // visible characters; <= 0 means DefaultSummaryLength
	Ending string // appended when truncated; "" means "..."
	Plain  bool   // strip all markup instead of the allow-list
	Raw    bool   // skip the styling pass
}

// Summary returns a truncated view of the content without the title.
// Paragraph boundaries are forced apart before stripping so truncation
// never glues two paragraphs together, and the cut never splits a tag
// or leaves markup unbalanced.
func (p *Post) Summary(opts SummaryOptions) string {
	length := opts.Length
	if length <= 0 {
		length = DefaultSummaryLength
	}
	ending := opts.Ending
	if ending == "" {
		ending = defaultSummaryEnding
	}

	summary := p.contentView(false, !opts.Raw)
	summary = strings.ReplaceAll(summary, "</p>", "</p> ")
	if opts.Plain {
		summary = htmlutil.StripAll(summary)
	} else {
		summary = htmlutil.StripToAllowed(summary)
	}

	return htmlutil.Truncate(summary, length, ending)
}

// Images returns the post's image URLs: the explicit list when one was
// supplied, otherwise the inline <img> sources scanned from the raw
// content. The scan runs once and is memoized.
func (p *Post) Images() []string {
	if !p.imagesScanned {
		p.images = htmlutil.ExtractImages(p.content)
		p.imagesScanned = true
	}
	return p.images
}

// HasImages reports whether the post has at least one image.
func (p *Post) HasImages() bool {
	return len(p.Images()) > 0
}

// Slug returns the post's URL-safe identifier. An explicit slug wins;
// otherwise the last path segment of the original URL is used, unless
// it is empty or a query-string remainder, in which case the slug is
// derived from the raw title. The result is computed once.
func (p *Post) Slug() string {
	if p.slugSet {
		return p.slug
	}

	slug := ""
	if p.url != "" {
		slug = strings.TrimSpace(strings.ToLower(urlFilename(p.url)))
	}
	if slug == "" || strings.HasPrefix(slug, "?") {
		slug = textutil.Slugify(p.title)
	}

	p.slug = slug
	p.slugSet = true
	return slug
}

// urlFilename extracts the last path segment of a URL, without any
// file extension. "http://x/2014/01/post-slug/" gives "post-slug".
func urlFilename(url string) string {
	base := path.Base(strings.TrimRight(url, "/"))
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}

// URLStub builds the post's relative output path from pattern
// (DefaultURLPattern when empty), substituting {{year}}, {{month}},
// {{day}} (zero-padded) and {{slug}}. It reports false when the post
// has no slug or no date.
func (p *Post) URLStub(pattern string) (string, bool) {
	slug := p.Slug()
	if slug == "" || p.date.IsZero() {
		return "", false
	}

	if pattern == "" {
		pattern = DefaultURLPattern
	}

	values := map[string]string{
		"year":  strconv.Itoa(p.date.Year()),
		"month": fmt.Sprintf("%02d", int(p.date.Month())),
		"day":   fmt.Sprintf("%02d", p.date.Day()),
		"slug":  slug,
	}
	return textutil.RenderTemplate(pattern, values), true
}

// Categories returns a copy of the category mapping, keyed by slug with
// the original display name as value.
func (p *Post) Categories() map[string]string {
	out := make(map[string]string, len(p.categories))
	for k, v := range p.categories {
		out[k] = v
	}
	return out
}

// SetCategories replaces the whole category mapping, keying each entry
// by the slug of its display name.
func (p *Post) SetCategories(names []string) {
	categories := make(map[string]string, len(names))
	for _, name := range names {
		categories[textutil.Slugify(name)] = name
	}
	p.categories = categories
}

// RemoveCategories drops the given categories, matching by slug. With
// slugify set the inputs are slugified first. Unknown entries are
// ignored.
func (p *Post) RemoveCategories(names []string, slugify bool) {
	for _, name := range names {
		if slugify {
			name = textutil.Slugify(name)
		}
		delete(p.categories, name)
	}
}

// Meta looks up an extension value by name.
func (p *Post) Meta(name string) (any, bool) {
	value, ok := p.meta[name]
	return value, ok
}

// SetMeta stores an extension value under name.
func (p *Post) SetMeta(name string, value any) {
	p.meta[name] = value
}
