package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractImages returns the src of every <img> in the fragment, in
// document order. A fragment that cannot be parsed yields no images.
func ExtractImages(fragment string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	var urls []string
	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		if src, ok := sel.Attr("src"); ok && src != "" {
			urls = append(urls, src)
		}
	})
	return urls
}
