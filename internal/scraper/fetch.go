package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const maxBodyBytes = 5 * 1024 * 1024

// Fetcher downloads pages politely: a global rate limit plus one
// request per second per host, bounded redirects, bounded body size.
type Fetcher struct {
	client        *http.Client
	globalLimiter *rate.Limiter
	hostLimiters  map[string]*rate.Limiter
	mu            sync.RWMutex
	userAgent     string
}

func NewFetcher(rps float64, timeout time.Duration) *Fetcher {
	if rps <= 0 {
		rps = 2
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		globalLimiter: rate.NewLimiter(rate.Limit(rps), 5),
		hostLimiters:  make(map[string]*rate.Limiter),
		userAgent:     "news-aggregator/1.0 (digest bot)",
	}
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := f.globalLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	if err := f.hostLimiter(rawURL).Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

func (f *Fetcher) hostLimiter(rawURL string) *rate.Limiter {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = strings.ToLower(u.Host)
	}

	f.mu.RLock()
	limiter, exists := f.hostLimiters[host]
	f.mu.RUnlock()
	if exists {
		return limiter
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if limiter, exists := f.hostLimiters[host]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(1, 2)
	f.hostLimiters[host] = limiter
	return limiter
}
