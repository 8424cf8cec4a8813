package view

import (
	"strings"
	"time"

	"github.com/glabrego/reachon-admin/internal/content"
	"github.com/glabrego/reachon-admin/internal/render/preview"
	tuitheme "github.com/glabrego/reachon-admin/internal/tui/theme"
)

func DetailMetaLines(item content.FeedItem, width int) []string {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = "(untitled)"
	}
	lines := make([]string, 0, 8)
	lines = append(lines, preview.Lines(title, width)...)
	lines = append(lines, strings.Repeat("=", max(1, min(width, len([]rune(title))))))
	lines = append(lines, "")
	lines = append(lines, "Source: "+string(item.Source))
	lines = append(lines, "Status: "+item.StatusLabel())
	if item.ContentType != "" {
		lines = append(lines, "Type: "+string(item.ContentType))
	}
	if !item.CreatedAt.IsZero() {
		lines = append(lines, "Date: "+item.CreatedAt.UTC().Format(time.RFC3339))
	}
	if len(item.Tags) > 0 {
		lines = append(lines, preview.Lines("Tags: "+strings.Join(item.Tags, ", "), width)...)
	}
	return lines
}

// DetailLines is the full scrollable body of the detail screen.
func DetailLines(item content.FeedItem, width int) []string {
	lines := DetailMetaLines(item, width)
	lines = append(lines, "")
	body := preview.Lines(item.Content, width)
	if len(body) == 0 {
		body = []string{preview.Placeholder}
	}
	return append(lines, body...)
}

func DetailMaxTop(total, height int) int {
	if height <= 0 || total <= height {
		return 0
	}
	return total - height
}

func RenderDetailLines(lines []string, top, height int, th tuitheme.Theme) []string {
	if top < 0 {
		top = 0
	}
	if top > len(lines) {
		top = len(lines)
	}
	end := len(lines)
	if height > 0 && top+height < end {
		end = top + height
	}
	out := make([]string, 0, end-top)
	for i, line := range lines[top:end] {
		if top+i == 0 {
			line = th.Title.Render(line)
		}
		out = append(out, line)
	}
	return out
}
