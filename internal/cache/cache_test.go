package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestKeyForIsDeterministic(t *testing.T) {
	url := "https://example.com/article?id=42"
	if KeyFor(url) != KeyFor(url) {
		t.Errorf("same url must yield same key")
	}
}

func TestKeyForDistinguishesURLs(t *testing.T) {
	urls := []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/a?x=1",
		"http://example.com/a",
	}
	seen := map[string]string{}
	for _, u := range urls {
		k := KeyFor(u)
		if prev, ok := seen[k]; ok {
			t.Errorf("urls %q and %q collide on key %q", prev, u, k)
		}
		seen[k] = u
	}
}

func TestKeyForShape(t *testing.T) {
	k := KeyFor("https://example.com")
	if len(k) != 32 {
		t.Errorf("key length = %d, want 32 hex chars", len(k))
	}
	if k != strings.ToLower(k) {
		t.Errorf("key should be lowercase hex, got %q", k)
	}
}

func TestDirCacheRoundTrip(t *testing.T) {
	c, err := NewDirCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirCache: %v", err)
	}
	key := KeyFor("https://example.com/article")

	if _, ok, err := c.Get(key); err != nil || ok {
		t.Fatalf("Get before Put: ok=%v err=%v, want miss", ok, err)
	}
	if err := c.Put(key, "a short summary"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get after Put: %v", err)
	}
	if !ok || got != "a short summary" {
		t.Errorf("Get = %q ok=%v, want stored value", got, ok)
	}
}

func TestDirCacheShardsByKeyPrefix(t *testing.T) {
	root := t.TempDir()
	c, err := NewDirCache(root)
	if err != nil {
		t.Fatalf("NewDirCache: %v", err)
	}
	key := KeyFor("https://example.com/sharded")
	if err := c.Put(key, "v"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	want := filepath.Join(root, key[:2], key+"_summary.txt")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("entry not at expected path %s: %v", want, err)
	}
}

func TestDirCacheSurvivesReopen(t *testing.T) {
	root := t.TempDir()
	first, err := NewDirCache(root)
	if err != nil {
		t.Fatalf("NewDirCache: %v", err)
	}
	key := KeyFor("https://example.com/persistent")
	if err := first.Put(key, "persisted"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	second, err := NewDirCache(root)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok, err := second.Get(key)
	if err != nil || !ok || got != "persisted" {
		t.Errorf("entry lost across reopen: got %q ok=%v err=%v", got, ok, err)
	}
}

func TestMemCacheRoundTrip(t *testing.T) {
	c := NewMemCache()
	key := KeyFor("https://example.com/mem")

	if _, ok, _ := c.Get(key); ok {
		t.Fatalf("unexpected hit before Put")
	}
	if err := c.Put(key, "v"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, _ := c.Get(key)
	if !ok || got != "v" {
		t.Errorf("Get = %q ok=%v, want hit", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}
