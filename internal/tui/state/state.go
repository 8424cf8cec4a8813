package state

import "github.com/glabrego/reachon-admin/internal/content"

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// PageStep is how many list rows a page jump moves, given the terminal
// height and the lines each row takes.
func PageStep(height, rowLines int, hasBanner bool) int {
	if height <= 0 {
		return 10
	}
	if rowLines < 1 {
		rowLines = 1
	}
	headerLines := 6
	if hasBanner {
		headerLines += 2
	}
	step := (height - headerLines) / rowLines
	if step < 3 {
		step = 3
	}
	return step
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

func ItemIndexByID(items []content.FeedItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// CursorAfterChange keeps the cursor on anchorID when it is still listed,
// otherwise on the same position clamped to the new length.
func CursorAfterChange(items []content.FeedItem, anchorID string, cursor int) int {
	if idx := ItemIndexByID(items, anchorID); idx >= 0 {
		return idx
	}
	return ClampCursor(cursor, len(items))
}
