package textutil

import (
	"html"
	"regexp"
)

var tokenRe = regexp.MustCompile(`\{\{(\w+)\}\}`)

// RenderTemplate replaces `{{token}}` markers in content with the
// matching entry from values. Unknown tokens are left verbatim.
// Substitution is a single pass; replaced values are never rescanned.
func RenderTemplate(content string, values map[string]string) string {
	if len(values) == 0 {
		return content
	}

	return tokenRe.ReplaceAllStringFunc(content, func(match string) string {
		token := match[2 : len(match)-2]
		value, ok := values[token]
		if !ok {
			return match
		}
		return value
	})
}

// Escape makes a string safe for HTML text and attribute contexts,
// quotes included.
func Escape(s string) string {
	return html.EscapeString(s)
}
