package content

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"
)

const (
	publishedStatus = "Published"
	untitled        = "Untitled"
)

func NormalizePost(raw RawPost) FeedItem {
	return FeedItem{
		ID:          raw.ID,
		Title:       raw.Title,
		Content:     raw.Content,
		ContentType: ContentText,
		Tags:        nonNilTags(raw.Tags),
		CreatedAt:   parseTimestamp(raw.CreatedAt),
		IsActive:    PostIsActive(raw.IsActive),
		Source:      SourcePost,
	}
}

func NormalizeFastR(raw RawFastR) FeedItem {
	title := raw.Title
	if title == "" {
		title = untitled
	}
	return FeedItem{
		ID:          raw.ID,
		Title:       title,
		Content:     raw.Content,
		ContentType: ContentAudio,
		Tags:        nonNilTags(raw.Tags),
		CreatedAt:   parseTimestamp(raw.CreatedAt),
		IsActive:    raw.IsActive,
		Source:      SourceFastR,
	}
}

// PostIsActive accepts both encodings the posts endpoint has used: the string
// "Published" and the boolean true. Anything else is inactive.
func PostIsActive(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s == publishedStatus
	}
	return false
}

// Merge normalizes both sequences and orders the result newest first. Items
// with equal CreatedAt keep their concatenation order.
func Merge(posts []RawPost, fastRs []RawFastR) []FeedItem {
	items := make([]FeedItem, 0, len(posts)+len(fastRs))
	for _, p := range posts {
		items = append(items, NormalizePost(p))
	}
	for _, f := range fastRs {
		items = append(items, NormalizeFastR(f))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return append([]string(nil), tags...)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// parseTimestamp returns the zero time for missing or unreadable values so
// such items sort last instead of failing the whole feed.
func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
