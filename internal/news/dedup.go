package news

// Deduper tracks URLs already accepted during one digest run. The URL
// is the sole identity key, both within one source's hit list and
// across sources.
type Deduper struct {
	seen map[string]struct{}
}

func NewDeduper() *Deduper {
	return &Deduper{seen: map[string]struct{}{}}
}

// Filter drops items whose URL was already accepted by this Deduper,
// preserving order. First-seen wins across every list passed in.
func (d *Deduper) Filter(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if _, ok := d.seen[item.URL]; ok {
			continue
		}
		d.seen[item.URL] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Dedup collapses one list on its own.
func Dedup(items []Item) []Item {
	return NewDeduper().Filter(items)
}
