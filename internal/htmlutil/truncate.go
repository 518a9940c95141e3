package htmlutil

import (
	"strings"

	"golang.org/x/net/html"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Truncate shortens an HTML fragment to at most max visible (tag-free)
// characters. The cut lands on a word boundary where one exists, ending
// is appended only when something was actually cut, and tags left open
// by the cut are closed so the result stays balanced. A cut never lands
// inside a tag.
func Truncate(fragment string, max int, ending string) string {
	if max <= 0 || visibleLength(fragment) <= max {
		return fragment
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	var open []string
	remaining := max

loop:
	for {
		switch z.Next() {
		case html.ErrorToken:
			break loop
		case html.TextToken:
			text := string(z.Text())
			runes := []rune(text)
			if len(runes) <= remaining {
				remaining -= len(runes)
				b.WriteString(html.EscapeString(text))
				continue
			}
			b.WriteString(html.EscapeString(cutAtWord(runes, remaining)))
			break loop
		case html.StartTagToken:
			name, _ := z.TagName()
			if !voidElements[string(name)] {
				open = append(open, string(name))
			}
			b.Write(z.Raw())
		case html.EndTagToken:
			name, _ := z.TagName()
			if n := len(open); n > 0 && open[n-1] == string(name) {
				open = open[:n-1]
			}
			b.Write(z.Raw())
		default:
			b.Write(z.Raw())
		}
	}

	b.WriteString(ending)
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString("</" + open[i] + ">")
	}
	return b.String()
}

func visibleLength(fragment string) int {
	z := html.NewTokenizer(strings.NewReader(fragment))
	n := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return n
		case html.TextToken:
			n += len([]rune(string(z.Text())))
		}
	}
}

func cutAtWord(runes []rune, limit int) string {
	cut := string(runes[:limit])
	if runes[limit] != ' ' {
		if i := strings.LastIndexAny(cut, " \t\n"); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRight(cut, " \t\n")
}
