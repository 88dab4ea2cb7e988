// Package news holds the aggregated item model and the scope filtering
// and deduplication logic shared by all sources.
package news

import "time"

// SourceTag records which kind of source produced an item. Provenance
// only; nothing branches on it besides digest section grouping.
type SourceTag string

const (
	SourceSearch SourceTag = "search"
	SourceSocial SourceTag = "social"
	SourceFeed   SourceTag = "feed"
)

// Item is one aggregated news item, normalized from whatever raw shape
// its source returned.
type Item struct {
	Title       string
	URL         string
	PublishedAt time.Time
	Summary     string
	Categories  []string
	Source      SourceTag
}

// Criteria is the per-run, per-source filter: a recency window plus
// optional category and keyword predicates. Zero values disable the
// optional predicates.
type Criteria struct {
	Window   time.Duration
	Category string
	Keywords []string
}
