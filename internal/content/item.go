package content

import (
	"encoding/json"
	"time"
)

type Source string

const (
	SourcePost  Source = "Post"
	SourceFastR Source = "FastR"
)

type ContentType string

const (
	ContentText  ContentType = "Text"
	ContentAudio ContentType = "Audio"
)

// FeedItem is the display shape shared by Posts and FastRs. Source decides
// which endpoint later moderation actions hit and never changes after merge.
type FeedItem struct {
	ID          string
	Title       string
	Content     string
	ContentType ContentType
	Tags        []string
	CreatedAt   time.Time
	IsActive    bool
	Source      Source
}

// StatusLabel is the badge text shown next to an item.
func (i FeedItem) StatusLabel() string {
	if i.IsActive {
		return "Published"
	}
	return "Blocked"
}

// RawPost is a record from GET /admin/posts. IsActive arrives either as the
// string "Published" or as a JSON boolean depending on the backend version.
type RawPost struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	ContentType string          `json:"contentType"`
	Tags        []string        `json:"tags"`
	CreatedAt   string          `json:"createdAt"`
	IsActive    json.RawMessage `json:"isActive"`
}

// RawFastR is a record from GET /fastr.
type RawFastR struct {
	ID        string   `json:"_id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt"`
	IsActive  bool     `json:"isActive"`
}
