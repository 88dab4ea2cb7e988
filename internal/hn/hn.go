// Package hn queries the Hacker News Algolia search API for stories
// matching configured keywords.
package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/denverdino/news-aggregator/internal/logger"
)

const DefaultBaseURL = "https://hn.algolia.com/api/v1"

// Hit is one raw story hit as returned by Algolia.
type Hit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	StoryID     int64  `json:"story_id"`
	CreatedAtTS int64  `json:"created_at_i"`
	StoryText   string `json:"story_text"`
}

type searchResponse struct {
	Hits []Hit `json:"hits"`
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

// Search returns story hits matching query created after the cutoff.
// Search restricts matching to title and story text and disables typo
// tolerance so keyword queries stay literal.
func (c *Client) Search(ctx context.Context, query string, since time.Time) ([]Hit, error) {
	params := url.Values{}
	params.Add("query", query)
	params.Add("tags", "story")
	params.Add("restrictSearchableAttributes", "title,story_text")
	params.Add("typoTolerance", "false")
	params.Add("numericFilters", fmt.Sprintf("created_at_i>%d", since.Unix()))

	reqURL := fmt.Sprintf("%s/search?%s", c.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search %q: unexpected status %s", query, resp.Status)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("search %q: decode response: %w", query, err)
	}
	return result.Hits, nil
}

// SearchAll runs one query per keyword and merges the hits, keeping only
// stories that carry an external URL and dropping stories already seen
// under another keyword (the same story frequently matches several).
func (c *Client) SearchAll(ctx context.Context, keywords []string, since time.Time) ([]Hit, error) {
	seenStories := map[int64]struct{}{}
	var hits []Hit

	for _, kw := range keywords {
		found, err := c.Search(ctx, kw, since)
		if err != nil {
			return nil, err
		}
		kept := 0
		for _, h := range found {
			if h.URL == "" {
				continue
			}
			if _, ok := seenStories[h.StoryID]; ok {
				continue
			}
			seenStories[h.StoryID] = struct{}{}
			hits = append(hits, h)
			kept++
		}
		logger.Debug("hn search done", "keyword", kw, "hits", len(found), "kept", kept)
	}
	return hits, nil
}
