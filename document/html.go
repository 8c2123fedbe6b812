package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FromHTML parses a rendered HTML page and collects its meta properties and
// title. pageURL is the URL the page was served from; it may be empty when
// only meta signals matter.
func FromHTML(r io.Reader, pageURL string) (Document, error) {
	parsed, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Document{}, fmt.Errorf("document: parse HTML: %w", err)
	}

	meta := map[string]string{}
	parsed.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content, ok := s.Attr("content")
		if !ok {
			return
		}
		name, ok := s.Attr("property")
		if !ok {
			name, ok = s.Attr("name")
		}
		if !ok || name == "" {
			return
		}
		// First declaration wins, matching how browsers resolve duplicates.
		if _, exists := meta[name]; !exists {
			meta[name] = content
		}
	})

	doc := New(pageURL, meta)
	doc.title = strings.TrimSpace(parsed.Find("title").First().Text())
	return doc, nil
}
