package crawler

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// GoqueryLinkExtractor collects anchor hrefs from HTML using goquery.
type GoqueryLinkExtractor struct{}

// Links returns the href of every a[href] element in document order.
func (GoqueryLinkExtractor) Links(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	sel := doc.Find("a[href]")
	hrefs := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs, nil
}
