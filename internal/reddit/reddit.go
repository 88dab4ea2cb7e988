// Package reddit fetches recent link submissions from subreddit JSON
// listings.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/denverdino/news-aggregator/internal/logger"
)

const (
	DefaultBaseURL = "https://www.reddit.com"
	userAgent      = "news-aggregator/1.0 (digest bot)"
)

// Post is one raw submission from a subreddit listing.
type Post struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
	Subreddit  string  `json:"subreddit"`
	SelfText   string  `json:"selftext"`
}

type listingResponse struct {
	Data struct {
		Children []struct {
			Data Post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: httpClient,
	}
}

// Fetch returns the newest submissions of one subreddit.
func (c *Client) Fetch(ctx context.Context, subreddit string, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = 25
	}
	reqURL := fmt.Sprintf("%s/r/%s/new.json?limit=%d", c.BaseURL, subreddit, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	// Reddit rejects default Go user agents with 429s.
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch r/%s: %w", subreddit, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch r/%s: unexpected status %s", subreddit, resp.Status)
	}

	var result listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("fetch r/%s: decode response: %w", subreddit, err)
	}

	posts := make([]Post, 0, len(result.Data.Children))
	for _, child := range result.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}

// FetchAll merges the newest submissions across subreddits. A failing
// subreddit fails the whole social source; the pipeline decides what to
// do with that.
func (c *Client) FetchAll(ctx context.Context, subreddits []string, limit int) ([]Post, error) {
	var posts []Post
	for _, sub := range subreddits {
		found, err := c.Fetch(ctx, sub, limit)
		if err != nil {
			return nil, err
		}
		logger.Debug("reddit fetch done", "subreddit", sub, "posts", len(found))
		posts = append(posts, found...)
	}
	return posts, nil
}

// ExternalURL picks the submission's link target: the submitted URL for
// link posts, the canonical permalink for self posts.
func (p Post) ExternalURL(baseURL string) string {
	u := strings.TrimSpace(p.URL)
	if u == "" || strings.HasPrefix(u, "/r/") {
		if p.Permalink == "" {
			return ""
		}
		return baseURL + p.Permalink
	}
	return u
}
