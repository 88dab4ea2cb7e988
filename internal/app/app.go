// Package app wires the source clients, scope filter, summarization and
// delivery into one sequential digest run.
package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/denverdino/news-aggregator/internal/cache"
	"github.com/denverdino/news-aggregator/internal/config"
	"github.com/denverdino/news-aggregator/internal/digest"
	"github.com/denverdino/news-aggregator/internal/hn"
	"github.com/denverdino/news-aggregator/internal/llm"
	"github.com/denverdino/news-aggregator/internal/logger"
	"github.com/denverdino/news-aggregator/internal/mail"
	"github.com/denverdino/news-aggregator/internal/metrics"
	"github.com/denverdino/news-aggregator/internal/news"
	"github.com/denverdino/news-aggregator/internal/ratelimit"
	"github.com/denverdino/news-aggregator/internal/reddit"
	"github.com/denverdino/news-aggregator/internal/rss"
	"github.com/denverdino/news-aggregator/internal/scraper"
	"github.com/denverdino/news-aggregator/internal/storage"
	"github.com/denverdino/news-aggregator/internal/summary"
)

// DigestSender delivers one rendered digest.
type DigestSender interface {
	Send(subject, textBody, htmlBody string) error
}

const (
	sectionSearch = "Hacker News"
	sectionSocial = "Reddit"

	redditPostsPerSub = 50
	scrapeRPS         = 2
)

type App struct {
	cfg     *config.Config
	sources *config.Sources
	search  *hn.Client
	social  *reddit.Client
	feeds   *rss.Fetcher
	orch    *summary.Orchestrator
	history storage.History
	sender  DigestSender
	closeFn func()
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	sources, err := config.LoadSources(cfg.SourcesFile)
	if err != nil {
		return nil, err
	}

	summaryCache, err := cache.NewDirCache(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	summarizer, closeFn, err := newSummarizer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	history, err := OpenHistory(cfg)
	if err != nil {
		closeFn()
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	return &App{
		cfg:     cfg,
		sources: sources,
		search:  hn.NewClient(httpClient),
		social:  reddit.NewClient(httpClient),
		feeds:   rss.NewFetcher(cfg.HTTPTimeout),
		orch: &summary.Orchestrator{
			Cache:         summaryCache,
			Resolver:      scraper.NewResolver(scrapeRPS, cfg.HTTPTimeout),
			Summarizer:    summarizer,
			MaxInputChars: cfg.MaxSummaryInputChars,
			Budget:        ratelimit.NewBudget(cfg.DailySummaryLimit),
		},
		history: history,
		sender: mail.NewSender(mail.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			To:       cfg.MailTo,
		}),
		closeFn: closeFn,
	}, nil
}

// newSummarizer builds the configured provider client. The returned
// func releases provider resources and is safe to call once.
func newSummarizer(ctx context.Context, cfg *config.Config) (llm.Summarizer, func(), error) {
	switch cfg.SummaryProvider {
	case "gemini":
		client, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.SummaryMaxTokens)
		if err != nil {
			return nil, nil, fmt.Errorf("gemini client: %w", err)
		}
		return client, client.Close, nil
	default:
		if cfg.AzureEndpoint != "" {
			return llm.NewAzureOpenAI(cfg.OpenAIAPIKey, cfg.AzureEndpoint, cfg.AzureDeployment, cfg.SummaryMaxTokens), func() {}, nil
		}
		return llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.SummaryMaxTokens), func() {}, nil
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			logger.Warn("close history", "error", err)
		}
	}
}

// section carries one source's contribution in delivery order.
type section struct {
	title string
	items []news.Item
}

// Run executes one full digest cycle: fetch every source, filter,
// deduplicate, summarize, drop already-sent items, render and deliver.
// Sources run strictly one after another; a failed source contributes
// zero items and never aborts the others.
func (a *App) Run(ctx context.Context) error {
	start := time.Now()
	now := time.Now()
	window := time.Duration(a.sources.WindowHours) * time.Hour

	sections := a.collect(ctx, now, window)

	deduper := news.NewDeduper()
	for i := range sections {
		before := len(sections[i].items)
		sections[i].items = deduper.Filter(sections[i].items)
		metrics.Global.AddDuplicatesFiltered(before - len(sections[i].items))

		if max := a.sources.MaxItemsPerSource; max > 0 && len(sections[i].items) > max {
			sections[i].items = sections[i].items[:max]
		}
	}

	a.summarize(ctx, sections)
	a.dropAlreadySent(sections)

	d := digest.New(now)
	for _, s := range sections {
		d.AddSection(s.title, s.items)
	}

	if d.Empty() {
		logger.Info("no new items in scope, skipping delivery")
		a.finishRun(start)
		return nil
	}

	htmlBody, err := digest.RenderHTML(d)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	textBody := digest.RenderText(d)
	subject := strings.TrimSpace(a.cfg.MailSubjectPrefix + " " + d.DateString())

	if err := a.sender.Send(subject, textBody, htmlBody); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	metrics.Global.IncrementDigestsSent()

	a.recordSent(d)

	a.finishRun(start)
	logger.Info("digest run complete", "items", d.ItemCount(), "duration", time.Since(start).String())
	return nil
}

func (a *App) finishRun(start time.Time) {
	metrics.Global.RecordRunDuration(time.Since(start))
	metrics.Global.SetLastRun()
}

// collect fetches and normalizes every configured source in a fixed
// order: search API, then the social API, then each feed.
func (a *App) collect(ctx context.Context, now time.Time, window time.Duration) []section {
	var sections []section

	if items, ok := a.collectSearch(ctx, now, window); ok {
		sections = append(sections, section{title: sectionSearch, items: items})
	}
	if items, ok := a.collectSocial(ctx, now, window); ok {
		sections = append(sections, section{title: sectionSocial, items: items})
	}
	sections = append(sections, a.collectFeeds(ctx, now, window)...)

	return sections
}

func (a *App) collectSearch(ctx context.Context, now time.Time, window time.Duration) ([]news.Item, bool) {
	if len(a.sources.Search.Keywords) == 0 {
		return nil, false
	}

	hits, err := a.search.SearchAll(ctx, a.sources.Search.Keywords, now.Add(-window))
	if err != nil {
		logger.Error("search source failed", "error", err)
		return nil, false
	}
	metrics.Global.AddItemsFetched(len(hits))

	crit := news.Criteria{Window: window}
	items := make([]news.Item, 0, len(hits))
	for _, h := range hits {
		item, err := news.FromSearchHit(h)
		if err != nil {
			logger.Warn("dropping malformed search hit", "error", err)
			metrics.Global.IncrementItemsDropped()
			continue
		}
		if !news.InScope(item, now, crit) {
			continue
		}
		items = append(items, item)
	}
	return items, true
}

func (a *App) collectSocial(ctx context.Context, now time.Time, window time.Duration) ([]news.Item, bool) {
	if len(a.sources.Social.Subreddits) == 0 {
		return nil, false
	}

	posts, err := a.social.FetchAll(ctx, a.sources.Social.Subreddits, redditPostsPerSub)
	if err != nil {
		logger.Error("social source failed", "error", err)
		return nil, false
	}
	metrics.Global.AddItemsFetched(len(posts))

	crit := news.Criteria{Window: window}
	items := make([]news.Item, 0, len(posts))
	for _, p := range posts {
		item, err := news.FromSocialPost(p)
		if err != nil {
			logger.Warn("dropping malformed post", "error", err)
			metrics.Global.IncrementItemsDropped()
			continue
		}
		if !news.InScope(item, now, crit) {
			continue
		}
		items = append(items, item)
	}
	return items, true
}

func (a *App) collectFeeds(ctx context.Context, now time.Time, window time.Duration) []section {
	results := a.feeds.FetchAll(ctx, a.sources.Feeds)

	sections := make([]section, 0, len(results))
	for _, res := range results {
		metrics.Global.AddItemsFetched(len(res.Items))

		crit := news.Criteria{
			Window:   window,
			Category: res.Feed.Category,
			Keywords: res.Feed.Keywords,
		}
		items := make([]news.Item, 0, len(res.Items))
		for _, entry := range res.Items {
			item, err := news.FromFeedEntry(entry)
			if err != nil {
				logger.Warn("dropping malformed feed entry", "feed", res.Feed.Name, "error", err)
				metrics.Global.IncrementItemsDropped()
				continue
			}
			if !news.InScope(item, now, crit) {
				continue
			}
			items = append(items, item)
		}
		sections = append(sections, section{title: res.Feed.Name, items: items})
	}
	return sections
}

// summarize attaches a summary to every surviving item. A failed
// attempt leaves the summary empty and the item in the digest.
func (a *App) summarize(ctx context.Context, sections []section) {
	for si := range sections {
		for ii := range sections[si].items {
			item := &sections[si].items[ii]
			text, err := a.orch.SummarizeURL(ctx, item.URL)
			if err != nil {
				logger.Error("summarization failed", "url", item.URL, "error", err)
			}
			item.Summary = text
		}
	}
}

// dropAlreadySent removes items delivered in earlier runs. A failed
// history lookup keeps the item; a repeat is better than a silent gap.
func (a *App) dropAlreadySent(sections []section) {
	for si := range sections {
		kept := sections[si].items[:0]
		for _, item := range sections[si].items {
			seen, err := a.history.Seen(item.URL)
			if err != nil {
				logger.Warn("history check failed, keeping item", "url", item.URL, "error", err)
				kept = append(kept, item)
				continue
			}
			if seen {
				logger.Debug("skipping already sent item", "url", item.URL)
				continue
			}
			kept = append(kept, item)
		}
		sections[si].items = kept
	}
}

// recordSent marks every delivered item, after the send succeeded.
func (a *App) recordSent(d *digest.Digest) {
	for _, s := range d.Sections {
		for _, item := range s.Items {
			if err := a.history.Record(item.URL, item.Title); err != nil {
				logger.Warn("recording sent item failed", "url", item.URL, "error", err)
			}
		}
	}
}
