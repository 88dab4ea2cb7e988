package news

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"github.com/denverdino/news-aggregator/internal/hn"
	"github.com/denverdino/news-aggregator/internal/reddit"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// stripTags flattens HTML-ish description text into plain text.
func stripTags(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// FromSearchHit converts an Algolia story hit. The hit must carry a
// title and an external URL; anything else is optional.
func FromSearchHit(h hn.Hit) (Item, error) {
	if h.URL == "" {
		return Item{}, fmt.Errorf("search hit %s: missing url", h.ObjectID)
	}
	if h.Title == "" {
		return Item{}, fmt.Errorf("search hit %s: missing title", h.ObjectID)
	}

	published := time.Now()
	if h.CreatedAtTS > 0 {
		published = time.Unix(h.CreatedAtTS, 0)
	}

	return Item{
		Title:       h.Title,
		URL:         h.URL,
		PublishedAt: published,
		Summary:     stripTags(h.StoryText),
		Source:      SourceSearch,
	}, nil
}

// FromSocialPost converts a subreddit submission. Link posts keep their
// submitted target URL; self posts fall back to their permalink.
func FromSocialPost(p reddit.Post) (Item, error) {
	u := p.ExternalURL(reddit.DefaultBaseURL)
	if u == "" {
		return Item{}, fmt.Errorf("post in r/%s: missing url", p.Subreddit)
	}
	if p.Title == "" {
		return Item{}, fmt.Errorf("post %s: missing title", u)
	}

	published := time.Now()
	if p.CreatedUTC > 0 {
		published = time.Unix(int64(p.CreatedUTC), 0)
	}

	return Item{
		Title:       p.Title,
		URL:         u,
		PublishedAt: published,
		Summary:     stripTags(p.SelfText),
		Source:      SourceSocial,
	}, nil
}

// FromFeedEntry converts a parsed feed entry. Publish dates come from
// the parsed published field, then the updated field, then a tolerant
// parse of the raw date string; entries with no usable date count as
// published now.
func FromFeedEntry(e *gofeed.Item) (Item, error) {
	if e.Link == "" {
		return Item{}, fmt.Errorf("feed entry %q: missing link", e.Title)
	}
	if e.Title == "" {
		return Item{}, fmt.Errorf("feed entry %s: missing title", e.Link)
	}

	published := time.Now()
	switch {
	case e.PublishedParsed != nil:
		published = *e.PublishedParsed
	case e.UpdatedParsed != nil:
		published = *e.UpdatedParsed
	case e.Published != "":
		if t, err := dateparse.ParseAny(e.Published); err == nil {
			published = t
		}
	}

	return Item{
		Title:       e.Title,
		URL:         e.Link,
		PublishedAt: published,
		Summary:     stripTags(e.Description),
		Categories:  e.Categories,
		Source:      SourceFeed,
	}, nil
}
