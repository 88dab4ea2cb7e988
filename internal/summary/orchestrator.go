// Package summary turns a bare URL into a cached summary, spending at
// most one summarizer call per unique URL for the lifetime of the
// cache.
package summary

import (
	"context"
	"errors"
	"fmt"

	"github.com/denverdino/news-aggregator/internal/cache"
	"github.com/denverdino/news-aggregator/internal/llm"
	"github.com/denverdino/news-aggregator/internal/logger"
	"github.com/denverdino/news-aggregator/internal/metrics"
	"github.com/denverdino/news-aggregator/internal/ratelimit"
)

var (
	// ErrSummarizer marks a failed summarizer call. The item keeps an
	// empty summary; the batch continues.
	ErrSummarizer = errors.New("summarizer call failed")
	// ErrCache marks a cache read or write failure, fatal only to the
	// current item's attempt.
	ErrCache = errors.New("summary cache failure")
)

// ContentResolver extracts article text from a URL.
type ContentResolver interface {
	Resolve(ctx context.Context, url string) (string, error)
}

type Orchestrator struct {
	Cache         cache.SummaryCache
	Resolver      ContentResolver
	Summarizer    llm.Summarizer
	MaxInputChars int
	Budget        *ratelimit.Budget // optional
}

// SummarizeURL returns the summary for a URL, from cache when present.
// A page that yields no text produces an empty summary without touching
// the summarizer, and nothing is cached for it: transiently unreachable
// pages get another chance on the next run, at the price of refetching
// pages that are gone for good. Summarizer and cache failures come back
// as ErrSummarizer / ErrCache wrapped errors.
func (o *Orchestrator) SummarizeURL(ctx context.Context, url string) (string, error) {
	key := cache.KeyFor(url)

	cached, ok, err := o.Cache.Get(key)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrCache, key, err)
	}
	if ok {
		metrics.Global.IncrementCacheHits()
		if o.Budget != nil {
			o.Budget.RecordCacheHit()
		}
		return cached, nil
	}
	metrics.Global.IncrementCacheMisses()

	text, err := o.Resolver.Resolve(ctx, url)
	if err != nil {
		logger.Error("content resolution failed", "url", url, "error", err)
		text = ""
	}
	if text == "" {
		return "", nil
	}

	if o.MaxInputChars > 0 && len(text) > o.MaxInputChars {
		text = text[:o.MaxInputChars]
	}

	if o.Budget != nil {
		if err := o.Budget.Use(); err != nil {
			metrics.Global.IncrementSummaryFailures()
			return "", fmt.Errorf("%w: %v", ErrSummarizer, err)
		}
	}

	out, err := o.Summarizer.Summarize(ctx, text)
	if err != nil {
		metrics.Global.IncrementSummaryFailures()
		return "", fmt.Errorf("%w: %v", ErrSummarizer, err)
	}
	metrics.Global.IncrementSummariesCreated()

	if err := o.Cache.Put(key, out); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrCache, key, err)
	}
	return out, nil
}
