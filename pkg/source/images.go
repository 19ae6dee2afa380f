package source

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// collectImages returns distinct absolute image URLs, declared ones first, then img tags of body in document order.
// Relative sources are resolved against pageURL.
func collectImages(pageURL, body string, declared ...string) []string {
	base, _ := url.Parse(pageURL)
	seen := map[string]bool{}
	var res []string
	add := func(src string) {
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		if u, err := url.Parse(src); err == nil && base != nil {
			src = base.ResolveReference(u).String()
		}
		if seen[src] {
			return
		}
		seen[src] = true
		res = append(res, src)
	}

	for _, d := range declared {
		add(d)
	}
	if strings.Contains(body, "<img") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(body)); err == nil {
			doc.Find("img").Each(func(_ int, s *goquery.Selection) {
				src, _ := s.Attr("src")
				add(src)
			})
		}
	}
	return res
}
