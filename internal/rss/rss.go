// Package rss downloads and parses the configured RSS/Atom feeds.
package rss

import (
	"context"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/denverdino/news-aggregator/internal/config"
	"github.com/denverdino/news-aggregator/internal/logger"
)

// FeedResult pairs a configured feed with the entries it yielded, so
// per-feed filter criteria stay attached to their entries.
type FeedResult struct {
	Feed  config.FeedSource
	Items []*gofeed.Item
}

type Fetcher struct {
	parser  *gofeed.Parser
	timeout time.Duration
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Fetcher{
		parser:  gofeed.NewParser(),
		timeout: timeout,
	}
}

// FetchAll downloads and parses every feed. A feed that fails to fetch
// or parse contributes zero entries and the rest are unaffected.
func (f *Fetcher) FetchAll(ctx context.Context, feeds []config.FeedSource) []FeedResult {
	results := make([]FeedResult, 0, len(feeds))
	successCount := 0

	for _, fc := range feeds {
		feedCtx, cancel := context.WithTimeout(ctx, f.timeout)
		feed, err := f.parser.ParseURLWithContext(fc.URL, feedCtx)
		cancel()
		if err != nil {
			logger.Error("feed fetch failed", "feed", fc.URL, "error", err)
			continue
		}
		results = append(results, FeedResult{Feed: fc, Items: feed.Items})
		successCount++
		logger.Debug("feed fetch done", "feed", fc.URL, "entries", len(feed.Items))
	}

	logger.Info("feeds processed", "ok", successCount, "total", len(feeds))
	return results
}
