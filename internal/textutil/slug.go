package textutil

import (
	"regexp"
	"strings"
)

// Words dropped entirely when they appear between other words in a slug.
var defaultStopWords = []string{"and", "or"}

var (
	apostropheRe = regexp.MustCompile(`(\w)'([st])(\W)`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9]+`)
	stopWordsRe  = buildStopWordsRe(defaultStopWords)
)

func buildStopWordsRe(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`( (?:` + strings.Join(quoted, "|") + `) )+`)
}

// Slugify converts a display string into a lowercase, hyphenated,
// URL-safe identifier. Possessive and contraction apostrophes are
// folded into the surrounding word ("post's" becomes "posts").
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = apostropheRe.ReplaceAllString(s, "${1}${2}${3}")
	s = stopWordsRe.ReplaceAllString(s, "-")
	s = nonAlnumRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
