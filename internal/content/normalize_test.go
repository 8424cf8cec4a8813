package content

import (
	"encoding/json"
	"sort"
	"testing"
	"time"
)

func TestPostIsActive_AcceptsBothEncodings(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "published string", raw: `"Published"`, want: true},
		{name: "boolean true", raw: `true`, want: true},
		{name: "boolean false", raw: `false`, want: false},
		{name: "other string", raw: `"Draft"`, want: false},
		{name: "lowercase string", raw: `"published"`, want: false},
		{name: "string true", raw: `"true"`, want: false},
		{name: "number", raw: `1`, want: false},
		{name: "null", raw: `null`, want: false},
		{name: "missing", raw: ``, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PostIsActive(json.RawMessage(tc.raw)); got != tc.want {
				t.Fatalf("PostIsActive(%s) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalizePost_Defaults(t *testing.T) {
	item := NormalizePost(RawPost{ID: "p1", Title: "Hello", CreatedAt: "2026-02-01T10:00:00Z"})

	if item.Content != "" {
		t.Fatalf("expected empty content, got %q", item.Content)
	}
	if item.Tags == nil || len(item.Tags) != 0 {
		t.Fatalf("expected empty non-nil tags, got %#v", item.Tags)
	}
	if item.Source != SourcePost || item.ContentType != ContentText {
		t.Fatalf("unexpected source/type: %s/%s", item.Source, item.ContentType)
	}
	if item.IsActive {
		t.Fatal("missing isActive should normalize to false")
	}
	if !item.CreatedAt.Equal(time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected createdAt: %s", item.CreatedAt)
	}
}

func TestNormalizeFastR_TitleFallback(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "", want: "Untitled"},
		{title: "Morning note", want: "Morning note"},
		{title: " ", want: " "},
	}
	for _, tc := range tests {
		item := NormalizeFastR(RawFastR{ID: "f1", Title: tc.title, IsActive: true})
		if item.Title != tc.want {
			t.Fatalf("title %q normalized to %q, want %q", tc.title, item.Title, tc.want)
		}
		if item.ContentType != ContentAudio || item.Source != SourceFastR {
			t.Fatalf("unexpected type/source: %s/%s", item.ContentType, item.Source)
		}
		if !item.IsActive {
			t.Fatal("expected isActive passed through")
		}
		if item.Tags == nil {
			t.Fatal("expected non-nil tags")
		}
	}
}

func TestNormalizeFastR_FromJSONWithoutOptionalFields(t *testing.T) {
	var raw RawFastR
	if err := json.Unmarshal([]byte(`{"_id":"f9","createdAt":"2026-02-03T00:00:00.000Z","isActive":false}`), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	item := NormalizeFastR(raw)
	if item.Title != "Untitled" || item.Content != "" || len(item.Tags) != 0 {
		t.Fatalf("unexpected defaults: %+v", item)
	}
}

func TestMerge_LengthAndOrder(t *testing.T) {
	posts := []RawPost{
		{ID: "p1", CreatedAt: "2026-02-01T00:00:00Z", IsActive: json.RawMessage(`"Published"`)},
		{ID: "p2", CreatedAt: "2026-02-04T00:00:00Z", IsActive: json.RawMessage(`true`)},
		{ID: "p3", CreatedAt: "garbage"},
	}
	fastRs := []RawFastR{
		{ID: "f1", CreatedAt: "2026-02-03T00:00:00Z"},
		{ID: "f2", CreatedAt: "2026-02-02T00:00:00Z"},
	}

	merged := Merge(posts, fastRs)
	if len(merged) != len(posts)+len(fastRs) {
		t.Fatalf("expected %d items, got %d", len(posts)+len(fastRs), len(merged))
	}
	sorted := sort.SliceIsSorted(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if !sorted {
		t.Fatalf("expected non-increasing createdAt, got %+v", merged)
	}
	wantIDs := []string{"p2", "f1", "f2", "p1", "p3"}
	for i, id := range wantIDs {
		if merged[i].ID != id {
			t.Fatalf("position %d: want %s, got %s", i, id, merged[i].ID)
		}
	}
}

func TestMerge_Empty(t *testing.T) {
	if got := Merge(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty merge, got %+v", got)
	}
}
