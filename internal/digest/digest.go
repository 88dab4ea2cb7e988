// Package digest assembles the filtered, summarized items of one run
// into ordered sections and renders them for delivery.
package digest

import (
	"time"

	"github.com/denverdino/news-aggregator/internal/news"
)

// Section groups the items contributed by one source.
type Section struct {
	Title string
	Items []news.Item
}

// Digest is the full collection delivered in one run.
type Digest struct {
	Date     time.Time
	Sections []Section
}

func New(date time.Time) *Digest {
	return &Digest{Date: date}
}

// AddSection appends a section. Sources that contributed nothing are
// left out of the digest entirely.
func (d *Digest) AddSection(title string, items []news.Item) {
	if len(items) == 0 {
		return
	}
	d.Sections = append(d.Sections, Section{Title: title, Items: items})
}

func (d *Digest) ItemCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Items)
	}
	return n
}

func (d *Digest) Empty() bool {
	return d.ItemCount() == 0
}

func (d *Digest) DateString() string {
	return d.Date.Format("January 2, 2006")
}
