package state

import (
	"testing"

	"github.com/glabrego/reachon-admin/internal/content"
)

func TestClampCursor(t *testing.T) {
	if got := ClampCursor(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampCursor(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampCursor(1, 3); got != 1 {
		t.Fatalf("expected keep 1, got %d", got)
	}
	if got := ClampCursor(5, 0); got != 0 {
		t.Fatalf("expected 0 for empty list, got %d", got)
	}
}

func TestPageStep(t *testing.T) {
	if got := PageStep(0, 1, false); got != 10 {
		t.Fatalf("expected default step 10, got %d", got)
	}
	if got := PageStep(26, 2, false); got != 10 {
		t.Fatalf("expected step 10, got %d", got)
	}
	if got := PageStep(12, 1, true); got != 4 {
		t.Fatalf("expected step 4 with banner, got %d", got)
	}
	if got := PageStep(8, 2, true); got != 3 {
		t.Fatalf("expected minimum step 3, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	if start, end := CenteredWindow(5, 3, 3); start != 2 || end != 5 {
		t.Fatalf("unexpected window: %d-%d", start, end)
	}
	if start, end := CenteredWindow(10, 0, 4); start != 0 || end != 4 {
		t.Fatalf("unexpected window at top: %d-%d", start, end)
	}
	if start, end := CenteredWindow(2, 1, 10); start != 0 || end != 2 {
		t.Fatalf("unexpected window for short list: %d-%d", start, end)
	}
}

func TestCursorAfterChange(t *testing.T) {
	items := []content.FeedItem{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	if got := CursorAfterChange(items, "c", 0); got != 2 {
		t.Fatalf("expected anchor index 2, got %d", got)
	}
	if got := CursorAfterChange(items[:2], "c", 2); got != 1 {
		t.Fatalf("expected clamped cursor 1, got %d", got)
	}
	if got := CursorAfterChange(nil, "a", 4); got != 0 {
		t.Fatalf("expected 0 for empty list, got %d", got)
	}
}
