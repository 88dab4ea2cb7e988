package news

import (
	"testing"
	"time"
)

func TestInScopeIncludesItemOnWindowBoundary(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	item := Item{PublishedAt: now.Add(-24 * time.Hour)}
	if !InScope(item, now, Criteria{Window: 24 * time.Hour}) {
		t.Errorf("item published exactly window ago should be in scope")
	}
}

func TestInScopeExcludesItemJustOutsideWindow(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	item := Item{PublishedAt: now.Add(-24*time.Hour - time.Second)}
	if InScope(item, now, Criteria{Window: 24 * time.Hour}) {
		t.Errorf("item published just outside window should be out of scope")
	}
}

func TestInScopeIncludesFutureDatedItemWithinWindow(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	item := Item{PublishedAt: now.Add(2 * time.Hour)}
	if !InScope(item, now, Criteria{Window: 24 * time.Hour}) {
		t.Errorf("future-dated item inside window should be in scope")
	}
}

func TestInScopeCategoryPassesWhenItemHasNoCategories(t *testing.T) {
	now := time.Now()
	item := Item{PublishedAt: now}
	c := Criteria{Window: time.Hour, Category: "kubernetes"}
	if !InScope(item, now, c) {
		t.Errorf("untagged item should pass a category filter")
	}
}

func TestInScopeCategoryMatchIsCaseInsensitive(t *testing.T) {
	now := time.Now()
	item := Item{PublishedAt: now, Categories: []string{"Kubernetes", "cloud"}}
	c := Criteria{Window: time.Hour, Category: "kubernetes"}
	if !InScope(item, now, c) {
		t.Errorf("category match should ignore case")
	}
}

func TestInScopeCategoryMismatchExcludes(t *testing.T) {
	now := time.Now()
	item := Item{PublishedAt: now, Categories: []string{"golang"}}
	c := Criteria{Window: time.Hour, Category: "kubernetes"}
	if InScope(item, now, c) {
		t.Errorf("tagged item without the wanted category should be excluded")
	}
}

func TestInScopeKeywordMatchesWholeWordsOnly(t *testing.T) {
	now := time.Now()
	c := Criteria{Window: time.Hour, Keywords: []string{"ai"}}

	item := Item{PublishedAt: now, Summary: "they said it would work"}
	if InScope(item, now, c) {
		t.Errorf("%q should not match keyword %q", item.Summary, "ai")
	}

	item.Summary = "new AI models released today"
	if !InScope(item, now, c) {
		t.Errorf("%q should match keyword %q", item.Summary, "ai")
	}
}

func TestInScopeKeywordSearchesSummaryNotTitle(t *testing.T) {
	now := time.Now()
	c := Criteria{Window: time.Hour, Keywords: []string{"kubernetes"}}
	item := Item{
		PublishedAt: now,
		Title:       "Kubernetes 1.30 released",
		Summary:     "the orchestrator got a new version",
	}
	if InScope(item, now, c) {
		t.Errorf("keyword in title only should not count")
	}
}

func TestInScopeNoKeywordsPassesUnconditionally(t *testing.T) {
	now := time.Now()
	item := Item{PublishedAt: now, Summary: ""}
	if !InScope(item, now, Criteria{Window: time.Hour}) {
		t.Errorf("empty criteria should pass every recent item")
	}
}

func TestInScopeAnyOfSeveralKeywordsSuffices(t *testing.T) {
	now := time.Now()
	c := Criteria{Window: time.Hour, Keywords: []string{"rust", "zig", "postgres"}}
	item := Item{PublishedAt: now, Summary: "running postgres in production"}
	if !InScope(item, now, c) {
		t.Errorf("one matching keyword out of several should suffice")
	}
}
