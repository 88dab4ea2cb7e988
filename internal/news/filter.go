package news

import (
	"regexp"
	"strings"
	"time"
)

// InScope reports whether an item passes the recency window and the
// optional category and keyword predicates. All predicates are pure and
// ANDed together.
func InScope(item Item, now time.Time, c Criteria) bool {
	return withinWindow(item.PublishedAt, now, c.Window) &&
		matchesCategory(item.Categories, c.Category) &&
		matchesKeywords(item.Summary, c.Keywords)
}

// withinWindow uses the absolute distance from now, so items dated
// slightly in the future (feed clock skew) still pass.
func withinWindow(published, now time.Time, window time.Duration) bool {
	diff := now.Sub(published)
	if diff < 0 {
		diff = -diff
	}
	return diff <= window
}

// matchesCategory requires case-insensitive membership when both a
// category filter and item categories are present. Items that declare
// no categories pass any category filter.
func matchesCategory(categories []string, want string) bool {
	if want == "" || len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if strings.EqualFold(strings.TrimSpace(c), want) {
			return true
		}
	}
	return false
}

// matchesKeywords requires at least one keyword to appear as a whole
// word inside the item's summary text. Titles are not searched. An
// empty keyword list passes everything.
func matchesKeywords(summary string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	text := strings.ToLower(summary)
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		// Whole-word match so "ai" does not hit "said".
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
