package htmlutil

import "github.com/microcosm-cc/bluemonday"

// Tags that survive summary stripping. Everything else, images and
// links included, is removed.
var summaryTags = []string{
	"p", "em", "strong",
	"h1", "h2", "h3", "h4", "h5",
	"ul", "ol", "li",
	"blockquote", "code", "pre", "span",
}

var (
	summaryPolicy = newSummaryPolicy()
	plainPolicy   = bluemonday.StrictPolicy()
)

func newSummaryPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(summaryTags...)
	return p
}

// StripToAllowed removes every tag not on the summary allow-list,
// keeping the text inside removed tags.
func StripToAllowed(fragment string) string {
	return summaryPolicy.Sanitize(fragment)
}

// StripAll removes all markup, keeping only the text content.
func StripAll(fragment string) string {
	return plainPolicy.Sanitize(fragment)
}
