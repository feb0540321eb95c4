package textutil

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelectors = "p, div, li, ul, ol, h1, h2, h3, h4, h5, h6, tr, section, article"

// HTMLToText renders an HTML fragment (a job description as the site serves it) into plain text.
// Block elements end with a line break so list items do not run together.
func HTMLToText(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return Clean(doc.Text()), nil
}
