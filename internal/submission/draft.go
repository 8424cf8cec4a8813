package submission

import (
	"strings"

	"github.com/google/uuid"

	"github.com/glabrego/reachon-admin/internal/media"
)

type Kind int

const (
	KindPost Kind = iota
	KindFastR
)

func (k Kind) String() string {
	if k == KindFastR {
		return "FastR"
	}
	return "post"
}

type Layout string

const (
	LayoutDefault Layout = "default"
	LayoutUpload  Layout = "upload"
)

// PostAreas is the closed set of categories a post can be filed under.
var PostAreas = []string{
	"Science Fiction",
	"History",
	"Politics",
	"Technology",
	"Health",
	"Business",
	"Entertainment",
	"Sports",
	"Anime",
	"Manga",
	"Movies",
	"TV Shows",
	"Podcast",
	"Books",
	"Other",
}

func ValidPostArea(area string) bool {
	for _, a := range PostAreas {
		if a == area {
			return true
		}
	}
	return false
}

// DocumentExtensions are the supporting document types a post accepts.
var DocumentExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".doc", ".docx"}

func ValidDocument(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range DocumentExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Draft is in-progress form input. A draft is consumed by one successful
// submit and discarded afterwards.
type Draft struct {
	ID       string
	Title    string
	Content  string
	Tags     Tags
	Layout   Layout
	PostArea string

	AdsEnabled  bool
	Thumbnail   *media.Blob
	LayoutImage *media.Blob
	Documents   []media.Blob

	Image *media.Blob
	Audio *media.Blob
}

func NewDraft() *Draft {
	return &Draft{ID: uuid.NewString(), Layout: LayoutDefault}
}
