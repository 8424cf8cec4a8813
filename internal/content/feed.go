package content

// Status is the feed list filter.
type Status string

const (
	StatusAll       Status = "All"
	StatusPublished Status = "Published"
	StatusBlocked   Status = "Blocked"
)

// Next cycles All -> Published -> Blocked -> All.
func (s Status) Next() Status {
	switch s {
	case StatusAll:
		return StatusPublished
	case StatusPublished:
		return StatusBlocked
	default:
		return StatusAll
	}
}

// Feed is a local snapshot of normalized items. Filtering never touches the
// network; moderation results are applied in place.
type Feed struct {
	items []FeedItem
}

func NewFeed(items []FeedItem) Feed {
	return Feed{items: append([]FeedItem(nil), items...)}
}

func (f Feed) Len() int { return len(f.items) }

func (f Feed) Items() []FeedItem {
	return append([]FeedItem(nil), f.items...)
}

func (f Feed) Filter(status Status) []FeedItem {
	out := make([]FeedItem, 0, len(f.items))
	for _, item := range f.items {
		switch status {
		case StatusPublished:
			if !item.IsActive {
				continue
			}
		case StatusBlocked:
			if item.IsActive {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

func (f Feed) Find(id string) (FeedItem, bool) {
	for _, item := range f.items {
		if item.ID == id {
			return item, true
		}
	}
	return FeedItem{}, false
}

// Remove drops the item after a successful delete.
func (f *Feed) Remove(id string) bool {
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i:i], f.items[i+1:]...)
			return true
		}
	}
	return false
}

// MarkBlocked flips IsActive off after a successful block.
func (f *Feed) MarkBlocked(id string) bool {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].IsActive = false
			return true
		}
	}
	return false
}
