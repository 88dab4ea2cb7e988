// Package scraper resolves a bare article URL into plain text for
// summarization.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// minArticleLen is the point below which an extraction attempt is
// considered to have missed the article body.
const minArticleLen = 120

// Resolver extracts article text from a URL. Extraction tries the
// reader-mode algorithm first, then a selector walk over common
// article markup, then the page's meta description.
type Resolver struct {
	fetcher *Fetcher
}

func NewResolver(rps float64, timeout time.Duration) *Resolver {
	return &Resolver{
		fetcher: NewFetcher(rps, timeout),
	}
}

// Resolve returns the extracted plain text for a URL. A page that
// cannot be fetched or yields no text at all returns an error; callers
// are expected to treat that as "no content" and move on, never to
// abort a batch over it.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (string, error) {
	body, err := r.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	if text := extractReadable(body, rawURL); len(text) >= minArticleLen {
		return text, nil
	}
	if text := extractBySelectors(body); len(text) >= minArticleLen {
		return text, nil
	}
	if text := extractMetaDescription(body); text != "" {
		return text, nil
	}
	return "", fmt.Errorf("extract %s: no content found", rawURL)
}

// extractReadable runs the Firefox reader-mode algorithm.
func extractReadable(body []byte, rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(bytes.NewReader(body), u)
	if err != nil {
		return ""
	}
	return normalizeText(article.TextContent)
}

// extractBySelectors walks common article containers and concatenates
// their paragraphs, most specific selector first.
func extractBySelectors(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	selectors := []string{
		"article p",
		".article p",
		".content p",
		".post-content p",
		".entry-content p",
		"main p",
		"#content p",
		"p",
	}

	var best []string
	for _, selector := range selectors {
		var paragraphs []string
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			return normalizeText(strings.Join(paragraphs, "\n"))
		}
		if len(paragraphs) > len(best) {
			best = paragraphs
		}
	}
	if len(best) == 0 {
		return ""
	}
	return normalizeText(strings.Join(best, "\n"))
}

// extractMetaDescription pulls og:description or the plain description
// meta tag as a last resort. A one-line description still gives the
// summarizer something to work with.
func extractMetaDescription(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var description, ogDescription string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var name, content string
			for _, attr := range n.Attr {
				switch strings.ToLower(attr.Key) {
				case "name", "property":
					name = strings.ToLower(attr.Val)
				case "content":
					content = attr.Val
				}
			}
			switch name {
			case "description":
				description = content
			case "og:description":
				ogDescription = content
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	if ogDescription != "" {
		return normalizeText(ogDescription)
	}
	return normalizeText(description)
}

// normalizeText collapses whitespace within lines and drops fragments
// too short to carry meaning, keeping paragraph breaks.
func normalizeText(s string) string {
	var paragraphs []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if len(line) >= 8 {
			paragraphs = append(paragraphs, line)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}
