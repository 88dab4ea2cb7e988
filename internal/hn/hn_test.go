package hn

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestSearchBuildsQuery(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		fmt.Fprint(w, `{"hits":[]}`)
	}))
	defer srv.Close()

	c := NewClient(nil)
	c.BaseURL = srv.URL

	since := time.Unix(1700000000, 0)
	if _, err := c.Search(context.Background(), "golang", since); err != nil {
		t.Fatalf("Search: %v", err)
	}

	checks := map[string]string{
		"query":                        "golang",
		"tags":                         "story",
		"restrictSearchableAttributes": "title,story_text",
		"typoTolerance":                "false",
		"numericFilters":               "created_at_i>1700000000",
	}
	for key, want := range checks {
		if got.Get(key) != want {
			t.Errorf("param %s = %q, want %q", key, got.Get(key), want)
		}
	}
}

func TestSearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(nil)
	c.BaseURL = srv.URL

	if _, err := c.Search(context.Background(), "golang", time.Now()); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestSearchAllDropsHitsWithoutURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hits":[
			{"objectID":"1","title":"Linked story","url":"https://example.com/a","story_id":1,"created_at_i":1700000000},
			{"objectID":"2","title":"Ask HN: no link","url":"","story_id":2,"created_at_i":1700000000}
		]}`)
	}))
	defer srv.Close()

	c := NewClient(nil)
	c.BaseURL = srv.URL

	hits, err := c.SearchAll(context.Background(), []string{"golang"}, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("SearchAll: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if hits[0].URL != "https://example.com/a" {
		t.Errorf("kept wrong hit: %+v", hits[0])
	}
}

func TestSearchAllDedupsStoriesAcrossKeywords(t *testing.T) {
	// The same story matches both keyword queries; it must appear once.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hits":[
			{"objectID":"1","title":"Shared story","url":"https://example.com/shared","story_id":42,"created_at_i":1700000000}
		]}`)
	}))
	defer srv.Close()

	c := NewClient(nil)
	c.BaseURL = srv.URL

	hits, err := c.SearchAll(context.Background(), []string{"golang", "kubernetes"}, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("SearchAll: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1 (story deduped across keywords)", len(hits))
	}
}

func TestSearchAllFailsWhenOneQueryFails(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"hits":[]}`)
	}))
	defer srv.Close()

	c := NewClient(nil)
	c.BaseURL = srv.URL

	if _, err := c.SearchAll(context.Background(), []string{"a", "b"}, time.Now()); err == nil {
		t.Fatal("expected SearchAll to surface a failed keyword query")
	}
}
