package view

import (
	"strings"
	"testing"
	"time"

	"github.com/glabrego/reachon-admin/internal/content"
	tuitheme "github.com/glabrego/reachon-admin/internal/tui/theme"
)

func TestDetailLines(t *testing.T) {
	item := content.FeedItem{
		Title:       "Hello",
		Content:     "<p>First para</p><p>Second para</p>",
		ContentType: content.ContentText,
		Tags:        []string{"news", "local"},
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		IsActive:    true,
		Source:      content.SourcePost,
	}
	lines := DetailLines(item, 40)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Hello", "=====", "Source: Post", "Status: Published", "Date: 2026-01-02T03:04:05Z", "Tags: news, local", "First para\n\nSecond para"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in detail, got:\n%s", want, joined)
		}
	}
}

func TestDetailLines_EmptyContent(t *testing.T) {
	lines := DetailLines(content.FeedItem{Source: content.SourceFastR}, 40)
	if lines[0] != "(untitled)" {
		t.Fatalf("unexpected title line: %q", lines[0])
	}
	if lines[len(lines)-1] != "No content available" {
		t.Fatalf("expected placeholder body, got %q", lines[len(lines)-1])
	}
}

func TestDetailMaxTopAndRender(t *testing.T) {
	if got := DetailMaxTop(10, 4); got != 6 {
		t.Fatalf("unexpected max top: %d", got)
	}
	if got := DetailMaxTop(3, 4); got != 0 {
		t.Fatalf("expected 0 for short body, got %d", got)
	}
	lines := []string{"a", "b", "c", "d"}
	got := RenderDetailLines(lines, 1, 2, tuitheme.Default())
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("unexpected window: %#v", got)
	}
	if got := RenderDetailLines(lines, 9, 2, tuitheme.Default()); len(got) != 0 {
		t.Fatalf("expected empty window past end, got %#v", got)
	}
}
